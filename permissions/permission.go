package permissions

import (
	_ "embed"
	"encoding/json"
	"slices"

	"github.com/rs/zerolog/log"
)

//go:embed permissions.json
var permissionsData []byte

// Permission binds a route pattern and method to the capability it requires.
type Permission struct {
	Capability Capability `json:"capability"`
	Path       string     `json:"path"`
	Method     string     `json:"method"`
	Skip       bool       `json:"skip"`
}

type PermissionData struct {
	Endpoints []Permission `json:"endpoints"`
	Skip      bool         `json:"skip"`
}

// FindPermissions looks up the route pattern (as chi reports it) and method.
func (r *PermissionData) FindPermissions(path, method string) (Permission, bool) {
	idx := slices.IndexFunc(r.Endpoints, func(rp Permission) bool {
		return rp.Path == path && rp.Method == method
	})

	if idx == -1 {
		return Permission{}, false
	}

	return r.Endpoints[idx], true
}

// Allows reports whether role may call the endpoint. Unknown endpoints are denied.
func (r *PermissionData) Allows(role Role, path, method string) bool {
	if r.Skip {
		return true
	}

	perm, ok := r.FindPermissions(path, method)
	if !ok {
		return false
	}

	return perm.Skip || role.Can(perm.Capability)
}

func Get() *PermissionData {
	var permissions PermissionData

	err := json.Unmarshal(permissionsData, &permissions)
	if err != nil {
		log.Err(err).Msg("Failed to decode embedded permissions")

		return nil
	}

	log.Info().Int("endpoints", len(permissions.Endpoints)).Msg("Successfully loaded embedded permissions")

	return &permissions
}
