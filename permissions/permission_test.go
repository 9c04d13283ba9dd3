package permissions_test

import (
	"context"
	"hotelbook/permissions"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRole_Can(t *testing.T) {
	tests := []struct {
		capability permissions.Capability
		admin      bool
		staff      bool
		customer   bool
	}{
		{capability: permissions.CapInventoryView, admin: true, staff: true, customer: true},
		{capability: permissions.CapInventoryManage, admin: true},
		{capability: permissions.CapRoomStatus, admin: true, staff: true},
		{capability: permissions.CapBookingCreate, admin: true, staff: true, customer: true},
		{capability: permissions.CapBookingViewOwn, admin: true, staff: true, customer: true},
		{capability: permissions.CapBookingViewAll, admin: true, staff: true},
		{capability: permissions.CapBookingOperate, admin: true, staff: true},
		{capability: permissions.CapBookingCancelOwn, admin: true, staff: true, customer: true},
		{capability: permissions.CapBookingCancelAny, admin: true, staff: true},
		{capability: permissions.CapPaymentRecord, admin: true, staff: true},
		{capability: permissions.CapReportView, admin: true},
		{capability: permissions.CapAuditView, admin: true},
	}

	for _, tt := range tests {
		t.Run(string(tt.capability), func(t *testing.T) {
			assert.Equal(t, tt.admin, permissions.RoleAdmin.Can(tt.capability))
			assert.Equal(t, tt.staff, permissions.RoleStaff.Can(tt.capability))
			assert.Equal(t, tt.customer, permissions.RoleCustomer.Can(tt.capability))
			assert.False(t, permissions.Role("").Can(tt.capability))
		})
	}
}

func TestParseRole(t *testing.T) {
	role, err := permissions.ParseRole(" Staff ")
	require.NoError(t, err)
	assert.Equal(t, permissions.RoleStaff, role)

	_, err = permissions.ParseRole("guest")
	assert.Error(t, err)
}

func TestRoleContext(t *testing.T) {
	assert.Equal(t, permissions.Role(""), permissions.RoleFromContext(context.Background()))

	ctx := permissions.WithRole(context.Background(), permissions.RoleCustomer)
	assert.Equal(t, permissions.RoleCustomer, permissions.RoleFromContext(ctx))
}

func TestPermissionData_Allows(t *testing.T) {
	data := permissions.Get()
	require.NotNil(t, data)

	tests := []struct {
		name   string
		role   permissions.Role
		path   string
		method string
		want   bool
	}{
		{name: "customer books", role: permissions.RoleCustomer, path: "/v1/bookings", method: http.MethodPost, want: true},
		{name: "customer cannot list all bookings", role: permissions.RoleCustomer, path: "/v1/bookings", method: http.MethodGet},
		{name: "staff walk-in", role: permissions.RoleStaff, path: "/v1/check-ins", method: http.MethodPost, want: true},
		{name: "staff cannot add hotels", role: permissions.RoleStaff, path: "/v1/hotels", method: http.MethodPost},
		{name: "staff cannot edit hotels", role: permissions.RoleStaff, path: "/v1/hotels/{id}", method: http.MethodPatch},
		{name: "admin edits hotels", role: permissions.RoleAdmin, path: "/v1/hotels/{id}", method: http.MethodPatch, want: true},
		{name: "admin reports", role: permissions.RoleAdmin, path: "/v1/reports/revenue", method: http.MethodGet, want: true},
		{name: "unknown route denied", role: permissions.RoleAdmin, path: "/v1/unknown", method: http.MethodGet},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, data.Allows(tt.role, tt.path, tt.method))
		})
	}
}
