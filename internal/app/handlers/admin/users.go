package admin

import (
	"context"
	"log/slog"
	"time"

	"github.com/Grace-nduta/Airbnb-Platform/internal/app/commands"
	"github.com/Grace-nduta/Airbnb-Platform/internal/app/dto"
	handlersupport "github.com/Grace-nduta/Airbnb-Platform/internal/app/handlers/support"
	"github.com/Grace-nduta/Airbnb-Platform/internal/app/queries"
	"github.com/Grace-nduta/Airbnb-Platform/internal/app/uow"
	domainaccess "github.com/Grace-nduta/Airbnb-Platform/internal/domain/access"
	domainuser "github.com/Grace-nduta/Airbnb-Platform/internal/domain/user"
)

const (
	listUsersKey     = "admin.users.list"
	changeRoleKey    = "admin.users.change_role"
	setSuspensionKey = "admin.users.set_suspension"
)

type ListUsersQuery struct {
	Actor  domainaccess.Actor
	Query  string
	Limit  int
	Offset int
}

func (q ListUsersQuery) Key() string { return listUsersKey }

type ListUsersHandler struct {
	UoWFactory uow.UoWFactory
	Policy     domainaccess.Policy
}

func (h *ListUsersHandler) Handle(ctx context.Context, q ListUsersQuery) (dto.UserList, error) {
	if err := h.Policy.CanModerate(q.Actor); err != nil {
		return dto.UserList{}, err
	}
	unit, execCtx, cleanup, err := handlersupport.BeginReadOnlyUnit(ctx, h.UoWFactory)
	if err != nil {
		return dto.UserList{}, err
	}
	if cleanup != nil {
		defer cleanup()
	}

	users, total, err := unit.Users().List(execCtx, domainuser.ListParams{
		Query:  q.Query,
		Limit:  q.Limit,
		Offset: q.Offset,
	})
	if err != nil {
		return dto.UserList{}, err
	}

	items := make([]dto.UserProfile, 0, len(users))
	for _, u := range users {
		items = append(items, dto.MapUserProfile(u))
	}
	return dto.UserList{Items: items, Total: total}, nil
}

type ChangeUserRoleCommand struct {
	Actor  domainaccess.Actor
	UserID string
	Role   string
}

func (c ChangeUserRoleCommand) Key() string { return changeRoleKey }

type ChangeUserRoleHandler struct {
	Policy domainaccess.Policy
	Logger *slog.Logger
}

func (h *ChangeUserRoleHandler) Handle(ctx context.Context, cmd ChangeUserRoleCommand) (*dto.UserProfile, error) {
	unit, ok := uow.FromContext(ctx)
	if !ok {
		return nil, uow.ErrUnitOfWorkMissing
	}
	if err := h.Policy.CanModerate(cmd.Actor); err != nil {
		return nil, err
	}

	role, err := domainuser.ParseRole(cmd.Role)
	if err != nil {
		return nil, err
	}
	u, err := unit.Users().ByID(ctx, domainuser.ID(cmd.UserID))
	if err != nil {
		return nil, err
	}
	if err := u.ChangeRole(role, time.Now()); err != nil {
		return nil, err
	}
	if err := unit.Users().Save(ctx, u); err != nil {
		return nil, err
	}

	if h.Logger != nil {
		h.Logger.Info("user role changed", "user_id", u.ID, "role", u.Role, "admin_id", cmd.Actor.ID)
	}

	profile := dto.MapUserProfile(u)
	return &profile, nil
}

// SetUserSuspensionCommand suspends or reactivates an account. A suspended
// account keeps its data but is denied every mutation until reactivated.
type SetUserSuspensionCommand struct {
	Actor     domainaccess.Actor
	UserID    string
	Suspended bool
}

func (c SetUserSuspensionCommand) Key() string { return setSuspensionKey }

type SetUserSuspensionHandler struct {
	Policy domainaccess.Policy
	Logger *slog.Logger
}

func (h *SetUserSuspensionHandler) Handle(ctx context.Context, cmd SetUserSuspensionCommand) (*dto.UserProfile, error) {
	unit, ok := uow.FromContext(ctx)
	if !ok {
		return nil, uow.ErrUnitOfWorkMissing
	}
	if err := h.Policy.CanModerate(cmd.Actor); err != nil {
		return nil, err
	}

	u, err := unit.Users().ByID(ctx, domainuser.ID(cmd.UserID))
	if err != nil {
		return nil, err
	}
	now := time.Now()
	if cmd.Suspended {
		u.Suspend(now)
	} else {
		u.Activate(now)
	}
	if err := unit.Users().Save(ctx, u); err != nil {
		return nil, err
	}

	if h.Logger != nil {
		h.Logger.Info("user suspension changed", "user_id", u.ID, "suspended", cmd.Suspended, "admin_id", cmd.Actor.ID)
	}

	profile := dto.MapUserProfile(u)
	return &profile, nil
}

var _ queries.Handler[ListUsersQuery, dto.UserList] = (*ListUsersHandler)(nil)
var _ commands.Handler[ChangeUserRoleCommand, *dto.UserProfile] = (*ChangeUserRoleHandler)(nil)
var _ commands.Handler[SetUserSuspensionCommand, *dto.UserProfile] = (*SetUserSuspensionHandler)(nil)
