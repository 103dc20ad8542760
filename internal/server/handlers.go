package server

import (
	"time"

	"family-tasks/internal/domain"
	"family-tasks/internal/errors"
	"family-tasks/internal/store"

	"github.com/gofiber/fiber/v2"
)

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
		Error:   "bad_request",
		Message: message,
	})
}

func (s *Server) handleRegister(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	profile, token, err := s.auth.Register(c.UserContext(), req.Email, req.Password, req.FullName)
	if err != nil {
		return handleError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(SessionResponse{
		Token:   token,
		Profile: toProfileResponse(profile),
	})
}

func (s *Server) handleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	profile, token, err := s.auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return handleError(c, err)
	}

	return c.JSON(SessionResponse{
		Token:   token,
		Profile: toProfileResponse(profile),
	})
}

func (s *Server) handleProfile(c *fiber.Ctx) error {
	session := sessionFrom(c)

	profile, err := s.auth.GetProfile(c.UserContext(), session.UserID)
	if err != nil {
		return handleError(c, err)
	}

	return c.JSON(toProfileResponse(profile))
}

func (s *Server) handleListMembers(c *fiber.Ctx) error {
	state := s.managerStateFor(c.UserContext(), sessionFrom(c).UserID)
	return c.JSON(toMemberResponses(state.members.Members()))
}

func (s *Server) handleAddMember(c *fiber.Ctx) error {
	var req MemberRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	state := s.managerStateFor(c.UserContext(), sessionFrom(c).UserID)
	err := state.members.Add(c.UserContext(), domain.MemberInput{
		Name:      req.Name,
		AvatarURL: req.AvatarURL,
		Color:     req.Color,
	})
	if err != nil {
		return handleError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(toMemberResponses(state.members.Members()))
}

func (s *Server) handleUpdateMember(c *fiber.Ctx) error {
	var req MemberRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	state := s.managerStateFor(c.UserContext(), sessionFrom(c).UserID)
	err := state.members.Update(c.UserContext(), c.Params("id"), domain.MemberInput{
		Name:      req.Name,
		AvatarURL: req.AvatarURL,
		Color:     req.Color,
	})
	if err != nil {
		return handleError(c, err)
	}

	return c.JSON(toMemberResponses(state.members.Members()))
}

func (s *Server) handleRemoveMember(c *fiber.Ctx) error {
	state := s.managerStateFor(c.UserContext(), sessionFrom(c).UserID)
	if err := state.members.Remove(c.UserContext(), c.Params("id")); err != nil {
		return handleError(c, err)
	}

	return c.JSON(toMemberResponses(state.members.Members()))
}

func (s *Server) handleMemberStats(c *fiber.Ctx) error {
	state := s.managerStateFor(c.UserContext(), sessionFrom(c).UserID)
	state.stats.Refresh(c.UserContext(), time.Now())

	var top *string
	if id := state.stats.TopMember(); id != "" {
		top = &id
	}
	return c.JSON(MemberStatsResponse{
		Stats:     state.stats.Stats(),
		TopMember: top,
	})
}

func (s *Server) handleGetSelection(c *fiber.Ctx) error {
	state := s.managerStateFor(c.UserContext(), sessionFrom(c).UserID)
	member, _ := state.selection.Selected()
	return c.JSON(toSelectionResponse(member))
}

func (s *Server) handlePutSelection(c *fiber.Ctx) error {
	var req SelectionRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if req.MemberID == "" {
		return badRequest(c, "member_id is required")
	}

	state := s.managerStateFor(c.UserContext(), sessionFrom(c).UserID)

	// Only members of the caller's own roster can be selected.
	member, ok := state.members.Find(req.MemberID)
	if !ok {
		return handleError(c, errors.NewNotFoundError("family member", req.MemberID))
	}

	if err := state.selection.Select(member); err != nil {
		return handleError(c, err)
	}

	selected, _ := state.selection.Selected()
	return c.JSON(toSelectionResponse(selected))
}

func (s *Server) handleDeleteSelection(c *fiber.Ctx) error {
	state := s.managerStateFor(c.UserContext(), sessionFrom(c).UserID)
	if err := state.selection.Clear(); err != nil {
		return handleError(c, err)
	}
	return c.JSON(toSelectionResponse(nil))
}

// taskStore resolves the request's task store, answering 409 when no
// member is selected. The access gate normally catches that earlier, but
// the selection can be cleared while a request is in flight.
func (s *Server) taskStore(c *fiber.Ctx) (*store.TaskStore, error) {
	tasks, ok := s.taskStoreFor(c.UserContext(), sessionFrom(c))
	if !ok {
		return nil, c.Status(fiber.StatusConflict).JSON(ErrorResponse{
			Error:   "member_not_selected",
			Message: "select a family member first",
		})
	}
	return tasks, nil
}

func (s *Server) handleListTasks(c *fiber.Ctx) error {
	tasks, err := s.taskStore(c)
	if tasks == nil {
		return err
	}

	filter := domain.Filter(c.Query("filter", string(domain.FilterAll)))
	sortBy := domain.Sort(c.Query("sort", string(domain.SortByDate)))
	search := c.Query("search")

	return c.JSON(toTaskResponses(tasks.FilteredTasks(filter, sortBy, search)))
}

func (s *Server) handleAddTask(c *fiber.Ctx) error {
	var req TaskRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	tasks, err := s.taskStore(c)
	if tasks == nil {
		return err
	}
	err = tasks.Add(c.UserContext(), domain.TaskInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    domain.Priority(req.Priority),
		DueDate:     req.DueDate,
		Category:    req.Category,
		Tags:        req.Tags,
	})
	if err != nil {
		return handleError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(toTaskResponses(tasks.Tasks()))
}

func (s *Server) handleUpdateTask(c *fiber.Ctx) error {
	var req TaskRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	tasks, err := s.taskStore(c)
	if tasks == nil {
		return err
	}

	update := domain.TaskUpdate{
		Title:       req.Title,
		Description: req.Description,
		Priority:    domain.Priority(req.Priority),
		DueDate:     req.DueDate,
		Category:    req.Category,
		Tags:        req.Tags,
		Completed:   req.Completed,
	}
	if req.Completed {
		if existing, ok := tasks.Find(c.Params("id")); ok && existing.CompletedAt != nil {
			update.CompletedAt = existing.CompletedAt
		} else {
			now := time.Now()
			update.CompletedAt = &now
		}
	}

	if err := tasks.Update(c.UserContext(), c.Params("id"), update); err != nil {
		return handleError(c, err)
	}

	return c.JSON(toTaskResponses(tasks.Tasks()))
}

func (s *Server) handleToggleTask(c *fiber.Ctx) error {
	tasks, err := s.taskStore(c)
	if tasks == nil {
		return err
	}
	if err := tasks.Toggle(c.UserContext(), c.Params("id"), time.Now()); err != nil {
		return handleError(c, err)
	}

	return c.JSON(toTaskResponses(tasks.Tasks()))
}

func (s *Server) handleRemoveTask(c *fiber.Ctx) error {
	tasks, err := s.taskStore(c)
	if tasks == nil {
		return err
	}
	if err := tasks.Remove(c.UserContext(), c.Params("id")); err != nil {
		return handleError(c, err)
	}

	return c.JSON(toTaskResponses(tasks.Tasks()))
}

func (s *Server) handleClearCompleted(c *fiber.Ctx) error {
	tasks, err := s.taskStore(c)
	if tasks == nil {
		return err
	}
	if err := tasks.ClearCompleted(c.UserContext()); err != nil {
		return handleError(c, err)
	}

	return c.JSON(toTaskResponses(tasks.Tasks()))
}

func (s *Server) handleTaskStats(c *fiber.Ctx) error {
	tasks, err := s.taskStore(c)
	if tasks == nil {
		return err
	}
	return c.JSON(tasks.Statistics(time.Now()))
}
