package domain

import (
	"context"
	"fmt"
)

const CtxUserInfo = "userInfo"

const (
	CtxSystemAdminId = "_HRMS_SYS_ADMIN_"
	CtxUnknownUserId = "_HRMS_SYS_UNKNOWN_"
)

// ContextUserInfo identifies the acting principal of a request. It is attached
// to the request context by the authentication middleware.
type ContextUserInfo struct {
	Id      UserIdentifier
	IsAdmin bool
}

func (u *ContextUserInfo) String() string {
	return fmt.Sprintf("%s|%t", u.Id, u.IsAdmin)
}

func (u *ContextUserInfo) UserId() string {
	return string(u.Id)
}

func DefaultContextUserInfo() *ContextUserInfo {
	return &ContextUserInfo{
		Id:      CtxUnknownUserId,
		IsAdmin: false,
	}
}

func SystemAdminContextUserInfo() *ContextUserInfo {
	return &ContextUserInfo{
		Id:      CtxSystemAdminId,
		IsAdmin: true,
	}
}

func SetUserInfo(ctx context.Context, info *ContextUserInfo) context.Context {
	return context.WithValue(ctx, CtxUserInfo, info)
}

func GetUserInfo(ctx context.Context) *ContextUserInfo {
	rawInfo := ctx.Value(CtxUserInfo)
	if rawInfo == nil {
		return DefaultContextUserInfo()
	}

	if info, ok := rawInfo.(*ContextUserInfo); ok {
		return info
	}

	return DefaultContextUserInfo()
}

// ValidateAdminAccessRights ensures that the acting principal has the admin capability.
func ValidateAdminAccessRights(ctx context.Context) error {
	if GetUserInfo(ctx).IsAdmin {
		return nil
	}

	return ErrNoPermission
}

// ValidateUserAccessRights ensures that the acting principal is either the given
// user or an admin.
func ValidateUserAccessRights(ctx context.Context, requiredId UserIdentifier) error {
	info := GetUserInfo(ctx)

	if info.IsAdmin {
		return nil
	}
	if info.Id == requiredId {
		return nil
	}

	return ErrNoPermission
}
