package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"

	"github.com/yukikurage/company-task-api/internal/dto"
	apierrors "github.com/yukikurage/company-task-api/internal/errors"
)

func (s *HandlerTestSuite) login(form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/auth/token", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *HandlerTestSuite) TestLogin_Form() {
	w := s.login(url.Values{"username": {"member"}, "password": {"password123"}})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var resp dto.TokenResponse
	s.decode(w, &resp)
	s.Equal("bearer", resp.TokenType)

	claims, err := s.tokens.Decode(resp.AccessToken)
	s.Require().NoError(err)
	s.True(claims.IsSelf(s.member.ID))
	s.False(claims.IsAdmin)
}

func (s *HandlerTestSuite) TestLogin_JSON() {
	w := s.do(http.MethodPost, "/auth/token", nil, map[string]string{"username": "admin", "password": "password123"})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var resp dto.TokenResponse
	s.decode(w, &resp)
	s.NotEmpty(resp.AccessToken)
}

func (s *HandlerTestSuite) TestLogin_Rejected() {
	tests := []struct {
		name string
		form url.Values
	}{
		{"wrong password", url.Values{"username": {"member"}, "password": {"nope-nope"}}},
		{"unknown user", url.Values{"username": {"ghost"}, "password": {"password123"}}},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			w := s.login(tt.form)
			body := s.requireError(w, http.StatusUnauthorized, apierrors.ErrCodeUnauthorized)
			s.Equal("Incorrect username or password", body.Message)
			s.Equal("Bearer", w.Header().Get("WWW-Authenticate"))
		})
	}
}

func (s *HandlerTestSuite) TestLogin_InactiveUser() {
	s.Require().NoError(s.db.Model(s.member).Update("is_active", false).Error)

	w := s.login(url.Values{"username": {"member"}, "password": {"password123"}})
	s.requireError(w, http.StatusUnauthorized, apierrors.ErrCodeUnauthorized)
}

func (s *HandlerTestSuite) TestLogin_MissingFields() {
	w := s.login(url.Values{"username": {"member"}})
	s.requireError(w, http.StatusUnprocessableEntity, apierrors.ErrCodeInvalidInput)
}

func (s *HandlerTestSuite) TestCurrentUser() {
	w := s.do(http.MethodGet, "/auth/me", s.member, nil)
	s.Require().Equal(http.StatusOK, w.Code)

	var user dto.UserDTO
	s.decode(w, &user)
	s.Equal(s.member.ID, user.ID)
	s.Equal("member", user.Username)
	s.NotContains(w.Body.String(), "password")
}

func (s *HandlerTestSuite) TestCurrentUser_Tokens() {
	s.Run("missing", func() {
		w := s.do(http.MethodGet, "/auth/me", nil, nil)
		s.requireError(w, http.StatusUnauthorized, apierrors.ErrCodeUnauthorized)
	})

	s.Run("garbage", func() {
		req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
		req.Header.Set("Authorization", "Bearer not-a-jwt")
		w := httptest.NewRecorder()
		s.router.ServeHTTP(w, req)
		s.requireError(w, http.StatusUnauthorized, apierrors.ErrCodeUnauthorized)
	})

	s.Run("user deleted after issue", func() {
		token := s.token(s.outsider)
		s.Require().NoError(s.db.Delete(s.outsider).Error)

		req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		s.router.ServeHTTP(w, req)
		s.requireError(w, http.StatusNotFound, apierrors.ErrCodeNotFound)
	})
}
