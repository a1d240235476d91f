package auth

import (
	"context"
	"testing"

	"streamhouse/api/internal/constants"
)

func TestSessionClaims(t *testing.T) {
	claims := &SessionClaims{UserUUID: "u-1", RoleUUID: constants.RoleIDHost}

	if claims.Role() != "host" {
		t.Errorf("Role() = %q, want host", claims.Role())
	}
	if !claims.HasRole(constants.RoleIDAdmin, constants.RoleIDHost) {
		t.Error("Expected host to match host/admin gate")
	}
	if claims.HasRole(constants.RoleIDAdmin) {
		t.Error("Expected host to fail admin gate")
	}
}

func TestRequestContext(t *testing.T) {
	ctx := context.Background()
	if GetUserClaims(ctx) != nil || GetToken(ctx) != "" || GetRequestID(ctx) != "" {
		t.Fatal("Expected empty context values")
	}

	claims := &SessionClaims{UserUUID: "u-1"}
	ctx = SetUserClaims(ctx, claims)
	ctx = SetToken(ctx, "tok")
	ctx = SetRequestID(ctx, "req-1")

	if GetUserClaims(ctx).UserID() != "u-1" {
		t.Error("Expected claims round trip")
	}
	if GetToken(ctx) != "tok" || GetRequestID(ctx) != "req-1" {
		t.Error("Expected token and request id round trip")
	}
}
