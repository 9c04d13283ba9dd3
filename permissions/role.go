package permissions

import (
	"context"
	"fmt"
	"hotelbook/shared/constant"
	"slices"
	"strings"
)

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleStaff    Role = "staff"
	RoleCustomer Role = "customer"
)

type Capability string

const (
	CapInventoryView    Capability = "inventory:view"
	CapInventoryManage  Capability = "inventory:manage"
	CapRoomStatus       Capability = "room:status"
	CapBookingCreate    Capability = "booking:create"
	CapBookingViewOwn   Capability = "booking:view_own"
	CapBookingViewAll   Capability = "booking:view_all"
	CapBookingOperate   Capability = "booking:operate"
	CapBookingCancelOwn Capability = "booking:cancel_own"
	CapBookingCancelAny Capability = "booking:cancel_any"
	CapPaymentRecord    Capability = "payment:record"
	CapReportView       Capability = "report:view"
	CapAuditView        Capability = "audit:view"
)

var capabilities = map[Role][]Capability{
	RoleAdmin: {
		CapInventoryView, CapInventoryManage, CapRoomStatus,
		CapBookingCreate, CapBookingViewOwn, CapBookingViewAll, CapBookingOperate,
		CapBookingCancelOwn, CapBookingCancelAny,
		CapPaymentRecord, CapReportView, CapAuditView,
	},
	RoleStaff: {
		CapInventoryView, CapRoomStatus,
		CapBookingCreate, CapBookingViewOwn, CapBookingViewAll, CapBookingOperate,
		CapBookingCancelOwn, CapBookingCancelAny,
		CapPaymentRecord,
	},
	RoleCustomer: {
		CapInventoryView,
		CapBookingCreate, CapBookingViewOwn, CapBookingCancelOwn,
	},
}

// ParseRole reads the role claim. It is case-insensitive.
func ParseRole(value string) (Role, error) {
	role := Role(strings.ToLower(strings.TrimSpace(value)))
	if _, ok := capabilities[role]; !ok {
		return "", fmt.Errorf("unknown role %q", value)
	}

	return role, nil
}

func (r Role) Can(capability Capability) bool {
	return slices.Contains(capabilities[r], capability)
}

func WithRole(ctx context.Context, role Role) context.Context {
	return context.WithValue(ctx, constant.ContextKeyUserRole, role)
}

// RoleFromContext returns the caller's role, or "" for unauthenticated calls.
func RoleFromContext(ctx context.Context) Role {
	role, _ := ctx.Value(constant.ContextKeyUserRole).(Role)

	return role
}
