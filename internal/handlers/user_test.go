package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/yukikurage/company-task-api/internal/dto"
	apierrors "github.com/yukikurage/company-task-api/internal/errors"
	"github.com/yukikurage/company-task-api/internal/models"
)

func (s *HandlerTestSuite) TestCreateUser() {
	w := s.do(http.MethodPost, "/user", s.admin, map[string]interface{}{
		"username":   "newbie",
		"password":   "password123",
		"email":      "newbie@example.com",
		"first_name": "Newt",
		"last_name":  "Bie",
		"company_id": s.company.ID,
	})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var user dto.UserDTO
	s.decode(w, &user)
	s.Equal("newbie", user.Username)
	s.True(user.IsActive)
	s.False(user.IsAdmin)
	s.Require().NotNil(user.CompanyID)
	s.Equal(s.company.ID, *user.CompanyID)
	s.NotContains(w.Body.String(), "password")
}

func (s *HandlerTestSuite) TestCreateUser_Rejections() {
	valid := func() map[string]interface{} {
		return map[string]interface{}{
			"username":   "newbie",
			"password":   "password123",
			"email":      "newbie@example.com",
			"first_name": "Newt",
			"last_name":  "Bie",
			"company_id": s.company.ID,
		}
	}
	with := func(key string, value interface{}) map[string]interface{} {
		body := valid()
		body[key] = value
		return body
	}
	without := func(key string) map[string]interface{} {
		body := valid()
		delete(body, key)
		return body
	}

	tests := []struct {
		name   string
		body   map[string]interface{}
		status int
		code   string
	}{
		{"short password", with("password", "short"), http.StatusUnprocessableEntity, apierrors.ErrCodeInvalidInput},
		{"missing company", without("company_id"), http.StatusUnprocessableEntity, apierrors.ErrCodeInvalidInput},
		{"unknown company", with("company_id", uuid.New()), http.StatusNotFound, apierrors.ErrCodeNotFound},
		{"username taken", with("username", "member"), http.StatusBadRequest, apierrors.ErrCodeBusinessRuleViolation},
		{"email taken", with("email", "member@example.com"), http.StatusBadRequest, apierrors.ErrCodeBusinessRuleViolation},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			w := s.do(http.MethodPost, "/user", s.admin, tt.body)
			s.requireError(w, tt.status, tt.code)
		})
	}

	w := s.do(http.MethodPost, "/user", s.member, valid())
	s.requireError(w, http.StatusForbidden, apierrors.ErrCodeAccessDenied)
}

func (s *HandlerTestSuite) TestGetUser_SelfOrAdmin() {
	path := "/user/" + s.member.ID.String()

	w := s.do(http.MethodGet, path, s.member, nil)
	s.Equal(http.StatusOK, w.Code)

	w = s.do(http.MethodGet, path, s.admin, nil)
	s.Equal(http.StatusOK, w.Code)

	w = s.do(http.MethodGet, path, s.outsider, nil)
	s.requireError(w, http.StatusForbidden, apierrors.ErrCodeAccessDenied)

	w = s.do(http.MethodGet, "/user/"+uuid.NewString(), s.admin, nil)
	s.requireError(w, http.StatusNotFound, apierrors.ErrCodeNotFound)
}

func (s *HandlerTestSuite) TestUpdateUser_Self() {
	path := "/user/" + s.member.ID.String()

	w := s.do(http.MethodPut, path, s.member, map[string]interface{}{"first_name": "Renamed"})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var user dto.UserDTO
	s.decode(w, &user)
	s.Equal("Renamed", user.FirstName)

	w = s.do(http.MethodPut, path, s.member, map[string]interface{}{"is_admin": true})
	s.requireError(w, http.StatusBadRequest, apierrors.ErrCodeBusinessRuleViolation)

	w = s.do(http.MethodPut, path, s.member, map[string]interface{}{"is_active": false})
	s.requireError(w, http.StatusBadRequest, apierrors.ErrCodeBusinessRuleViolation)

	w = s.do(http.MethodPut, path, s.member, map[string]interface{}{"email": "outsider@example.com"})
	s.requireError(w, http.StatusBadRequest, apierrors.ErrCodeBusinessRuleViolation)

	w = s.do(http.MethodPut, path, s.outsider, map[string]interface{}{"first_name": "Hijacked"})
	s.requireError(w, http.StatusForbidden, apierrors.ErrCodeAccessDenied)
}

func (s *HandlerTestSuite) TestUpdateUser_SelfEchoesOwnRecord() {
	path := "/user/" + s.member.ID.String()

	w := s.do(http.MethodGet, path, s.member, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var current dto.UserDTO
	s.decode(w, &current)

	w = s.do(http.MethodPut, path, s.member, map[string]interface{}{
		"first_name": "Renamed",
		"is_admin":   current.IsAdmin,
		"is_active":  current.IsActive,
		"company_id": current.CompanyID,
	})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var user dto.UserDTO
	s.decode(w, &user)
	s.Equal("Renamed", user.FirstName)
	s.False(user.IsAdmin)
	s.Equal(s.company.ID, *user.CompanyID)

	other := &models.Company{Name: "Globex", Description: "Globes", Mode: models.CompanyModeActive}
	s.Require().NoError(s.db.Create(other).Error)
	w = s.do(http.MethodPut, path, s.member, map[string]interface{}{"company_id": other.ID})
	s.requireError(w, http.StatusBadRequest, apierrors.ErrCodeBusinessRuleViolation)
}

func (s *HandlerTestSuite) TestUpdateUser_AdminPromotes() {
	w := s.do(http.MethodPut, "/user/"+s.member.ID.String(), s.admin, map[string]interface{}{"is_admin": true})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var user dto.UserDTO
	s.decode(w, &user)
	s.True(user.IsAdmin)
}

func (s *HandlerTestSuite) TestSearchUsers() {
	w := s.do(http.MethodGet, "/user/search?is_admin=false&order_by=username", s.admin, nil)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var users []dto.UserDTO
	s.decode(w, &users)
	s.Require().Len(users, 2)
	s.Equal("member", users[0].Username)
	s.Equal("outsider", users[1].Username)

	w = s.do(http.MethodGet, "/user/search?is_admin=maybe", s.admin, nil)
	s.requireError(w, http.StatusUnprocessableEntity, apierrors.ErrCodeInvalidInput)

	w = s.do(http.MethodGet, "/user/search", s.member, nil)
	s.requireError(w, http.StatusForbidden, apierrors.ErrCodeAccessDenied)
}
