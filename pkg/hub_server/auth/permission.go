package auth

import "github.com/samber/lo"

// Permission is a scope granted to an API token, e.g. "contacts:read".
type Permission string

const (
	PermissionContactsRead   = Permission("contacts:read")
	PermissionContactsWrite  = Permission("contacts:write")
	PermissionTicketsRead    = Permission("tickets:read")
	PermissionTicketsWrite   = Permission("tickets:write")
	PermissionMessagesRead   = Permission("messages:read")
	PermissionMessagesWrite  = Permission("messages:write")
	PermissionQueuesRead     = Permission("queues:read")
	PermissionTagsRead       = Permission("tags:read")
	PermissionWhatsAppsRead  = Permission("whatsapps:read")
	PermissionUsersRead      = Permission("users:read")
	PermissionAll            = Permission("*")
	PermissionAllAlias       = Permission("all")
)

var KnownPermissions = []Permission{
	PermissionContactsRead,
	PermissionContactsWrite,
	PermissionTicketsRead,
	PermissionTicketsWrite,
	PermissionMessagesRead,
	PermissionMessagesWrite,
	PermissionQueuesRead,
	PermissionTagsRead,
	PermissionWhatsAppsRead,
	PermissionUsersRead,
	PermissionAll,
	PermissionAllAlias,
}

// HasPermission reports whether granted covers required. "*" and "all" cover everything.
func HasPermission(granted []Permission, required Permission) bool {
	return lo.ContainsBy(granted, func(p Permission) bool {
		return p == required || p == PermissionAll || p == PermissionAllAlias
	})
}
