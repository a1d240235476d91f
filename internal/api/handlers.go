package api

import (
	"context"

	"streamhouse/api/internal/models/dtos"
	gormModels "streamhouse/api/internal/models/gorm"
	"streamhouse/api/internal/query"
	"streamhouse/api/internal/services"
)

// AuthService is the sign-up, OTP and session surface used by the auth handlers.
type AuthService interface {
	SignUp(ctx context.Context, req *dtos.SignUpReq) (*dtos.SignUpResponse, error)
	VerifyOTP(ctx context.Context, req *dtos.VerifyOTPReq) (*gormModels.User, error)
	ResendOTP(ctx context.Context, req *dtos.ResendOTPReq) error
	SignIn(ctx context.Context, req *dtos.SignInReq, client dtos.ClientInfo) (*dtos.LoginResponse, error)
	VerifySession(ctx context.Context, userID, token string) (*gormModels.User, error)
	Logout(ctx context.Context, userID, token string) error
}

type UserService interface {
	FindAll(ctx context.Context, q query.Params) ([]gormModels.User, int64, error)
	FindByID(ctx context.Context, id string, withDeleted bool) (*gormModels.User, error)
	Me(ctx context.Context, userID string) (*gormModels.User, error)
	Create(ctx context.Context, req *dtos.CreateUserReq) (*gormModels.User, error)
	Update(ctx context.Context, id string, req *dtos.UpdateUserReq) (*gormModels.User, error)
	Restore(ctx context.Context, id string) error
	SoftDelete(ctx context.Context, id string) error
	ForceDelete(ctx context.Context, id string) error
}

type RoleService interface {
	FindAll(ctx context.Context) ([]gormModels.Role, error)
}

type LiveService interface {
	FindAll(ctx context.Context, q query.Params) ([]gormModels.Live, int64, error)
	FindByID(ctx context.Context, id string, paranoid bool) (*gormModels.Live, error)
	Create(ctx context.Context, req *dtos.LiveReq, hostID string) (*gormModels.Live, error)
	Update(ctx context.Context, id string, req *dtos.LiveReq, actor services.Actor) (*gormModels.Live, error)
	Restore(ctx context.Context, id string) error
	SoftDelete(ctx context.Context, id string) error
	ForceDelete(ctx context.Context, id string) error
	MultipleRestore(ctx context.Context, ids []string) (int64, error)
	MultipleSoftDelete(ctx context.Context, ids []string) (int64, error)
	MultipleForceDelete(ctx context.Context, ids []string) (int64, error)
	Join(ctx context.Context, id, userID string) (*gormModels.LiveSession, error)
	Leave(ctx context.Context, id, userID string) (*gormModels.LiveSession, error)
	Stop(ctx context.Context, id string, actor services.Actor) (*gormModels.Live, error)
	Stats(ctx context.Context, id string) (*dtos.LiveStats, error)
	Viewers(ctx context.Context, id string, activeOnly bool) ([]gormModels.LiveSession, error)
}
