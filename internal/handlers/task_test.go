package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/yukikurage/company-task-api/internal/dto"
	apierrors "github.com/yukikurage/company-task-api/internal/errors"
	"github.com/yukikurage/company-task-api/internal/models"
)

func (s *HandlerTestSuite) TestCreateTask() {
	w := s.do(http.MethodPost, "/task", s.member, map[string]interface{}{
		"summary":  "Write report",
		"priority": models.TaskPriorityHigh,
		"user_id":  s.member.ID,
	})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var task dto.TaskDTO
	s.decode(w, &task)
	s.Equal("Write report", task.Summary)
	s.Equal(models.TaskStatusNotStarted, task.Status)
	s.Equal(models.TaskPriorityHigh, task.Priority)
	s.Require().NotNil(task.UserID)
	s.Equal(s.member.ID, *task.UserID)
}

func (s *HandlerTestSuite) TestCreateTask_Rejections() {
	tests := []struct {
		name   string
		body   map[string]interface{}
		status int
		code   string
	}{
		{"for someone else", map[string]interface{}{"summary": "Theirs", "user_id": s.outsider.ID}, http.StatusBadRequest, apierrors.ErrCodeBusinessRuleViolation},
		{"missing owner", map[string]interface{}{"summary": "Nobody"}, http.StatusUnprocessableEntity, apierrors.ErrCodeInvalidInput},
		{"missing summary", map[string]interface{}{"user_id": s.member.ID}, http.StatusUnprocessableEntity, apierrors.ErrCodeInvalidInput},
		{"bad status", map[string]interface{}{"summary": "Odd", "status": 7, "user_id": s.member.ID}, http.StatusUnprocessableEntity, apierrors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			w := s.do(http.MethodPost, "/task", s.member, tt.body)
			s.requireError(w, tt.status, tt.code)
		})
	}

	w := s.do(http.MethodPost, "/task", s.admin, map[string]interface{}{"summary": "Lost", "user_id": uuid.New()})
	s.requireError(w, http.StatusNotFound, apierrors.ErrCodeNotFound)
}

func (s *HandlerTestSuite) TestCreateTask_InProgressLimit() {
	s.createTask(s.member, "one", models.TaskStatusInProgress)
	s.createTask(s.member, "two", models.TaskStatusInProgress)

	w := s.do(http.MethodPost, "/task", s.member, map[string]interface{}{
		"summary": "three",
		"status":  models.TaskStatusInProgress,
		"user_id": s.member.ID,
	})
	body := s.requireError(w, http.StatusBadRequest, apierrors.ErrCodeBusinessRuleViolation)
	s.Equal("User can have only 2 in progress tasks", body.Message)

	// The limit is per user.
	w = s.do(http.MethodPost, "/task", s.outsider, map[string]interface{}{
		"summary": "mine",
		"status":  models.TaskStatusInProgress,
		"user_id": s.outsider.ID,
	})
	s.Equal(http.StatusCreated, w.Code, w.Body.String())
}

func (s *HandlerTestSuite) TestGetTask() {
	task := s.createTask(s.member, "private", models.TaskStatusNotStarted)
	path := "/task/" + task.ID.String()

	w := s.do(http.MethodGet, path, s.member, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var got dto.TaskDTO
	s.decode(w, &got)
	s.Equal(task.ID, got.ID)
	s.Require().NotNil(got.User)
	s.Equal("member", got.User.Username)

	w = s.do(http.MethodGet, path, s.admin, nil)
	s.Equal(http.StatusOK, w.Code)

	w = s.do(http.MethodGet, path, s.outsider, nil)
	s.requireError(w, http.StatusForbidden, apierrors.ErrCodeAccessDenied)

	w = s.do(http.MethodGet, "/task/"+uuid.NewString(), s.outsider, nil)
	s.requireError(w, http.StatusNotFound, apierrors.ErrCodeNotFound)
}

func (s *HandlerTestSuite) TestUpdateTask() {
	task := s.createTask(s.member, "draft", models.TaskStatusNotStarted)
	path := "/task/" + task.ID.String()

	w := s.do(http.MethodPut, path, s.member, map[string]interface{}{
		"summary": "final",
		"status":  models.TaskStatusCompleted,
	})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var got dto.TaskDTO
	s.decode(w, &got)
	s.Equal("final", got.Summary)
	s.Equal(models.TaskStatusCompleted, got.Status)

	w = s.do(http.MethodPut, path, s.outsider, map[string]interface{}{"summary": "stolen"})
	s.requireError(w, http.StatusBadRequest, apierrors.ErrCodeBusinessRuleViolation)

	w = s.do(http.MethodPut, path, s.member, map[string]interface{}{"user_id": s.outsider.ID})
	s.requireError(w, http.StatusBadRequest, apierrors.ErrCodeBusinessRuleViolation)

	w = s.do(http.MethodPut, path, s.admin, map[string]interface{}{"user_id": s.outsider.ID})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	got = dto.TaskDTO{}
	s.decode(w, &got)
	s.Equal(s.outsider.ID, *got.UserID)
}

func (s *HandlerTestSuite) TestUpdateTask_InProgressLimit() {
	s.createTask(s.member, "one", models.TaskStatusInProgress)
	s.createTask(s.member, "two", models.TaskStatusInProgress)
	waiting := s.createTask(s.member, "three", models.TaskStatusNotStarted)

	w := s.do(http.MethodPut, "/task/"+waiting.ID.String(), s.member, map[string]interface{}{"status": models.TaskStatusInProgress})
	s.requireError(w, http.StatusBadRequest, apierrors.ErrCodeBusinessRuleViolation)

	w = s.do(http.MethodPut, "/task/"+waiting.ID.String(), s.member, map[string]interface{}{"summary": "still waiting"})
	s.Equal(http.StatusOK, w.Code, w.Body.String())
}

func (s *HandlerTestSuite) TestSearchTasks_Scoping() {
	s.createTask(s.member, "member report", models.TaskStatusNotStarted)
	s.createTask(s.member, "member review", models.TaskStatusCompleted)
	s.createTask(s.outsider, "outsider report", models.TaskStatusNotStarted)

	w := s.do(http.MethodGet, "/task/search?summary=report", s.member, nil)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var tasks []dto.TaskDTO
	s.decode(w, &tasks)
	s.Require().Len(tasks, 1)
	s.Equal("member report", tasks[0].Summary)

	w = s.do(http.MethodGet, "/task/search?summary=report", s.admin, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	tasks = nil
	s.decode(w, &tasks)
	s.Len(tasks, 2)

	w = s.do(http.MethodGet, "/task/search?status=completed&user_id="+s.member.ID.String(), s.admin, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	tasks = nil
	s.decode(w, &tasks)
	s.Require().Len(tasks, 1)
	s.Equal("member review", tasks[0].Summary)

	w = s.do(http.MethodGet, "/task/search?user_id="+s.outsider.ID.String(), s.member, nil)
	s.requireError(w, http.StatusBadRequest, apierrors.ErrCodeBusinessRuleViolation)
}

func (s *HandlerTestSuite) TestSearchTasks_BadQuery() {
	for _, query := range []string{"order_by=owner", "priority=urgent", "user_id=42", "page=1&page_size=x"} {
		s.Run(query, func() {
			w := s.do(http.MethodGet, "/task/search?"+query, s.member, nil)
			s.requireError(w, http.StatusUnprocessableEntity, apierrors.ErrCodeInvalidInput)
		})
	}
}

func (s *HandlerTestSuite) TestListTasks_AdminOnly() {
	s.createTask(s.member, "one", models.TaskStatusNotStarted)

	w := s.do(http.MethodGet, "/task", s.admin, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var tasks []dto.TaskDTO
	s.decode(w, &tasks)
	s.Len(tasks, 1)

	w = s.do(http.MethodGet, "/task", s.member, nil)
	s.requireError(w, http.StatusForbidden, apierrors.ErrCodeAccessDenied)
}
