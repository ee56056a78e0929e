package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/yukikurage/company-task-api/internal/dto"
	apierrors "github.com/yukikurage/company-task-api/internal/errors"
	"github.com/yukikurage/company-task-api/internal/models"
)

func (s *HandlerTestSuite) TestCreateCompany() {
	w := s.do(http.MethodPost, "/company", s.admin, map[string]interface{}{
		"name":        "Globex",
		"description": "Globes and more",
		"rating":      models.RatingFour,
	})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var company dto.CompanyDTO
	s.decode(w, &company)
	s.Equal("Globex", company.Name)
	s.Equal(models.CompanyModeActive, company.Mode)
	s.Equal(models.RatingFour, company.Rating)
}

func (s *HandlerTestSuite) TestCreateCompany_Rejections() {
	tests := []struct {
		name   string
		user   func() *models.User
		body   map[string]interface{}
		status int
		code   string
	}{
		{
			name:   "non admin",
			user:   func() *models.User { return s.member },
			body:   map[string]interface{}{"name": "Globex", "description": "Globes"},
			status: http.StatusForbidden,
			code:   apierrors.ErrCodeAccessDenied,
		},
		{
			name:   "short name",
			user:   func() *models.User { return s.admin },
			body:   map[string]interface{}{"name": "G", "description": "Globes"},
			status: http.StatusUnprocessableEntity,
			code:   apierrors.ErrCodeInvalidInput,
		},
		{
			name:   "bad rating",
			user:   func() *models.User { return s.admin },
			body:   map[string]interface{}{"name": "Globex", "description": "Globes", "rating": 9},
			status: http.StatusUnprocessableEntity,
			code:   apierrors.ErrCodeInvalidInput,
		},
		{
			name:   "duplicate name",
			user:   func() *models.User { return s.admin },
			body:   map[string]interface{}{"name": "Acme", "description": "Again"},
			status: http.StatusBadRequest,
			code:   apierrors.ErrCodeBusinessRuleViolation,
		},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			w := s.do(http.MethodPost, "/company", tt.user(), tt.body)
			s.requireError(w, tt.status, tt.code)
		})
	}
}

func (s *HandlerTestSuite) TestGetCompany_Access() {
	path := "/company/" + s.company.ID.String()

	w := s.do(http.MethodGet, path, s.member, nil)
	s.Require().Equal(http.StatusOK, w.Code)

	drifter := s.createUser("drifter", false)
	s.Require().NoError(s.db.Model(drifter).Update("company_id", nil).Error)
	drifter.CompanyID = nil
	w = s.do(http.MethodGet, path, drifter, nil)
	s.requireError(w, http.StatusForbidden, apierrors.ErrCodeAccessDenied)

	w = s.do(http.MethodGet, "/company/"+uuid.NewString(), s.admin, nil)
	s.requireError(w, http.StatusNotFound, apierrors.ErrCodeNotFound)

	w = s.do(http.MethodGet, "/company/not-a-uuid", s.admin, nil)
	s.requireError(w, http.StatusUnprocessableEntity, apierrors.ErrCodeInvalidInput)
}

func (s *HandlerTestSuite) TestUpdateCompany() {
	w := s.do(http.MethodPut, "/company/"+s.company.ID.String(), s.admin, map[string]interface{}{
		"description": "Anvils and rockets",
		"mode":        models.CompanyModeInactive,
	})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var company dto.CompanyDTO
	s.decode(w, &company)
	s.Equal("Acme", company.Name)
	s.Equal("Anvils and rockets", company.Description)
	s.Equal(models.CompanyModeInactive, company.Mode)

	w = s.do(http.MethodPut, "/company/"+s.company.ID.String(), s.member, map[string]interface{}{"description": "Mine now"})
	s.requireError(w, http.StatusForbidden, apierrors.ErrCodeAccessDenied)
}

func (s *HandlerTestSuite) TestSearchCompanies() {
	for _, name := range []string{"Globex", "Initech", "Globo Gym"} {
		w := s.do(http.MethodPost, "/company", s.admin, map[string]interface{}{"name": name, "description": "Filler"})
		s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	}

	w := s.do(http.MethodGet, "/company/search?name=glob&order_by=name&order_direction=desc", s.admin, nil)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var companies []dto.CompanyDTO
	s.decode(w, &companies)
	s.Require().Len(companies, 2)
	s.Equal("Globo Gym", companies[0].Name)
	s.Equal("Globex", companies[1].Name)

	w = s.do(http.MethodGet, "/company/search?order_by=name&page=2&page_size=3", s.admin, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	companies = nil
	s.decode(w, &companies)
	s.Require().Len(companies, 1)
	s.Equal("Initech", companies[0].Name)

	w = s.do(http.MethodGet, "/company/search?mode=inactive", s.admin, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	companies = nil
	s.decode(w, &companies)
	s.Empty(companies)
}

func (s *HandlerTestSuite) TestSearchCompanies_BadQuery() {
	for _, query := range []string{"order_by=secret", "mode=sideways", "page=0&page_size=10"} {
		s.Run(query, func() {
			w := s.do(http.MethodGet, "/company/search?"+query, s.admin, nil)
			s.requireError(w, http.StatusUnprocessableEntity, apierrors.ErrCodeInvalidInput)
		})
	}
}

func (s *HandlerTestSuite) TestListCompanies() {
	w := s.do(http.MethodGet, "/company", s.admin, nil)
	s.Require().Equal(http.StatusOK, w.Code)

	var companies []dto.CompanyDTO
	s.decode(w, &companies)
	s.Len(companies, 1)

	w = s.do(http.MethodGet, "/company", s.member, nil)
	s.requireError(w, http.StatusForbidden, apierrors.ErrCodeAccessDenied)
}
