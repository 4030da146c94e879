package handler

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"pangate/internal/plugin/handler/mocks"
	"pangate/internal/plugin/models"
	dErrors "pangate/pkg/domain-errors"
	"pangate/pkg/testutil"
)

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service

const testToken = "test-admin-token"

type PluginHandlerSuite struct {
	suite.Suite
	service *mocks.MockService
	router  chi.Router
}

func TestPluginHandlerSuite(t *testing.T) {
	suite.Run(t, new(PluginHandlerSuite))
}

func (s *PluginHandlerSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.service = mocks.NewMockService(ctrl)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	s.router = chi.NewRouter()
	New(s.service, logger, testToken).Register(s.router)
}

func (s *PluginHandlerSuite) do(method, path string, body any, admin bool) *httptest.ResponseRecorder {
	req := testutil.NewJSONRequest(s.T(), method, path, body)
	if admin {
		req = testutil.WithAdminToken(req, testToken)
	}
	return testutil.DoRequest(s.router, req)
}

func (s *PluginHandlerSuite) decode(w *httptest.ResponseRecorder) map[string]any {
	return *testutil.UnmarshalResponse[map[string]any](s.T(), w)
}

func samplePlugin() *models.Plugin {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return &models.Plugin{
		UID:       "V1StGXR8_Z5jdHi6B-myT",
		Name:      "NSDL",
		Provider:  models.ProviderNSDL,
		Service:   models.ServicePANValidation,
		Username:  "svc-user",
		Password:  "super-secret-password",
		APIKey:    "live_key_1234567890",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (s *PluginHandlerSuite) TestAdminRoutesRequireToken() {
	w := s.do(http.MethodGet, "/admin/plugins", nil, false)
	testutil.AssertStatusAndError(s.T(), w, http.StatusUnauthorized, "unauthorized")
}

func (s *PluginHandlerSuite) TestCreatePluginNeverEchoesSecrets() {
	s.service.EXPECT().CreatePlugin(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ any, req *models.CreatePluginRequest) (*models.Plugin, error) {
			s.Equal("NSDL", req.Name)
			s.Equal(models.ProviderNSDL, req.Provider)
			return samplePlugin(), nil
		})

	w := s.do(http.MethodPost, "/admin/plugins", map[string]string{
		"name":     "  NSDL ",
		"provider": "NSDL",
		"service":  "pan_validation",
		"username": "svc-user",
		"password": "super-secret-password",
		"api_key":  "live_key_1234567890",
	}, true)

	s.Require().Equal(http.StatusCreated, w.Code)
	s.NotContains(w.Body.String(), "super-secret-password")
	s.NotContains(w.Body.String(), "live_key_1234567890")

	resp := s.decode(w)
	s.Equal("V1StGXR8_Z5jdHi6B-myT", resp["uid"])
	s.Equal("basic", resp["auth_method"])
	s.Equal(true, resp["has_credentials"])
	s.Equal("********7890", resp["api_key_hint"])
}

func (s *PluginHandlerSuite) TestCreatePluginValidation() {
	s.Run("unknown provider", func() {
		w := s.do(http.MethodPost, "/admin/plugins", map[string]string{
			"name": "x", "provider": "acme", "service": "pan_validation", "api_key": "k",
		}, true)
		testutil.AssertStatusAndError(s.T(), w, http.StatusBadRequest, "validation_error")
	})

	s.Run("missing name", func() {
		w := s.do(http.MethodPost, "/admin/plugins", map[string]string{
			"provider": "nsdl", "service": "pan_validation", "api_key": "k",
		}, true)
		s.Equal(http.StatusBadRequest, w.Code)
		s.Equal("name is required", s.decode(w)["error_description"])
	})

	s.Run("unknown field", func() {
		w := s.do(http.MethodPost, "/admin/plugins", `{"name":"x","colour":"red"}`, true)
		testutil.AssertStatusAndError(s.T(), w, http.StatusBadRequest, "bad_request")
	})

	s.Run("credential invariant", func() {
		s.service.EXPECT().CreatePlugin(gomock.Any(), gomock.Any()).
			Return(nil, dErrors.New(dErrors.CodeInvariantViolation, "either username and password or api_key must be provided"))
		w := s.do(http.MethodPost, "/admin/plugins", map[string]string{
			"name": "x", "provider": "nsdl", "service": "pan_validation",
		}, true)
		s.Equal(http.StatusUnprocessableEntity, w.Code)
	})
}

func (s *PluginHandlerSuite) TestListPlugins() {
	s.service.EXPECT().ListPlugins(gomock.Any(), "pan_validation").Return([]*models.Plugin{samplePlugin()}, nil)

	w := s.do(http.MethodGet, "/admin/plugins?service=pan_validation", nil, true)
	s.Require().Equal(http.StatusOK, w.Code)
	resp := s.decode(w)
	s.Equal(float64(1), resp["count"])
	s.NotContains(w.Body.String(), "super-secret-password")
}

func (s *PluginHandlerSuite) TestGetUpdateDelete() {
	p := samplePlugin()

	s.service.EXPECT().GetPlugin(gomock.Any(), p.UID).Return(p, nil)
	w := s.do(http.MethodGet, "/admin/plugins/"+p.UID, nil, true)
	s.Equal(http.StatusOK, w.Code)

	s.service.EXPECT().GetPlugin(gomock.Any(), "missing").Return(nil, dErrors.New(dErrors.CodeNotFound, "plugin not found"))
	w = s.do(http.MethodGet, "/admin/plugins/missing", nil, true)
	s.Equal(http.StatusNotFound, w.Code)

	s.service.EXPECT().UpdatePlugin(gomock.Any(), p.UID, gomock.Any()).
		DoAndReturn(func(_ any, _ string, req *models.UpdatePluginRequest) (*models.Plugin, error) {
			s.Require().NotNil(req.Name)
			s.Equal("renamed", *req.Name)
			s.Nil(req.APIKey)
			p.Name = *req.Name
			return p, nil
		})
	w = s.do(http.MethodPut, "/admin/plugins/"+p.UID, map[string]string{"name": " renamed "}, true)
	s.Equal(http.StatusOK, w.Code)
	s.Equal("renamed", s.decode(w)["name"])

	s.service.EXPECT().DeletePlugin(gomock.Any(), p.UID).Return(nil)
	w = s.do(http.MethodDelete, "/admin/plugins/"+p.UID, nil, true)
	s.Equal(http.StatusNoContent, w.Code)
}

func (s *PluginHandlerSuite) TestPANChecks() {
	checkedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	s.Run("validate", func() {
		s.service.EXPECT().ValidatePAN(gomock.Any(), "uid", "ABCDE1234F").Return(&models.PANCheckResult{
			PluginUID: "uid",
			Service:   models.ServicePANValidation,
			Provider:  models.ProviderNSDL,
			PAN:       "AB*******F",
			Result:    true,
			CheckedAt: checkedAt,
		}, nil)

		w := s.do(http.MethodPost, "/plugins/uid/pan/validate", map[string]string{"pan": " abcde1234f "}, false)
		s.Require().Equal(http.StatusOK, w.Code)
		resp := s.decode(w)
		s.Equal(true, resp["result"])
		s.Equal("nsdl", resp["provider"])
	})

	s.Run("eligibility", func() {
		s.service.EXPECT().CheckPANEligibility(gomock.Any(), "uid", "ABCDE1234F").Return(&models.PANCheckResult{
			PluginUID: "uid",
			Service:   models.ServicePANEligibility,
			Provider:  models.ProviderUnisen,
			Result:    false,
			CheckedAt: checkedAt,
		}, nil)

		w := s.do(http.MethodPost, "/plugins/uid/pan/eligibility", map[string]string{"pan": "ABCDE1234F"}, false)
		s.Require().Equal(http.StatusOK, w.Code)
		s.Equal(false, s.decode(w)["result"])
	})

	s.Run("missing pan", func() {
		w := s.do(http.MethodPost, "/plugins/uid/pan/validate", map[string]string{}, false)
		s.Equal(http.StatusBadRequest, w.Code)
	})

	s.Run("provider errors map to gateway statuses", func() {
		cases := map[dErrors.Code]int{
			dErrors.CodeTimeout:      http.StatusGatewayTimeout,
			dErrors.CodeUnavailable:  http.StatusBadGateway,
			dErrors.CodeInvalidState: http.StatusConflict,
			dErrors.CodeInternal:     http.StatusInternalServerError,
		}
		for code, status := range cases {
			s.service.EXPECT().ValidatePAN(gomock.Any(), "uid", "ABCDE1234F").Return(nil, dErrors.New(code, "boom"))
			w := s.do(http.MethodPost, "/plugins/uid/pan/validate", map[string]string{"pan": "ABCDE1234F"}, false)
			s.Equal(status, w.Code, string(code))
		}
	})
}

func TestMaskSecret(t *testing.T) {
	cases := map[string]string{
		"":             "",
		"short":        "********",
		"exactly8":     "********",
		"abcdefghijkl": "********ijkl",
	}
	for in, want := range cases {
		if got := maskSecret(in); got != want {
			t.Errorf("maskSecret(%q) = %q, want %q", in, got, want)
		}
	}
}
