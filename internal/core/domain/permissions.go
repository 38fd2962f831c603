package domain

// The permission tables below are the canonical authorization rules. The
// strictest variant is in force: master acts on admins and users but never on
// other masters, admin acts on users only, user acts on no one. Every
// function is total — any combination not listed is denied.

// creatable maps an actor role to the roles it may create users with.
var creatable = map[Role][]Role{
	RoleMaster: {RoleAdmin, RoleUser},
	RoleAdmin:  {RoleUser},
}

// updatable maps an actor role to the target roles it may modify.
var updatable = map[Role][]Role{
	RoleMaster: {RoleAdmin, RoleUser},
	RoleAdmin:  {RoleUser},
}

// deletable maps an actor role to the target roles it may remove.
var deletable = map[Role][]Role{
	RoleMaster: {RoleAdmin, RoleUser},
	RoleAdmin:  {RoleUser},
}

// assignable maps an actor role to the role values it may write into a
// record's role field. No role other than master may ever assign master.
var assignable = map[Role][]Role{
	RoleMaster: {RoleAdmin, RoleMaster},
	RoleAdmin:  {RoleUser, RoleAdmin},
}

// visible maps an actor role to the target roles it may list.
var visible = map[Role][]Role{
	RoleMaster: {RoleAdmin},
	RoleAdmin:  {RoleUser},
}

// CanCreateUser reports whether actor may create a user holding target role.
func CanCreateUser(actor, target Role) bool {
	return contains(creatable[actor], target)
}

// CanUpdateUser reports whether actor may modify a user holding target role.
func CanUpdateUser(actor, target Role) bool {
	return contains(updatable[actor], target)
}

// CanDeleteUser reports whether actor may delete a user holding target role.
func CanDeleteUser(actor, target Role) bool {
	return contains(deletable[actor], target)
}

// CanAssignRole reports whether actor may set a role field to target.
func CanAssignRole(actor, target Role) bool {
	return contains(assignable[actor], target)
}

// CanView reports whether actor may list users holding target role.
func CanView(actor, target Role) bool {
	return contains(visible[actor], target)
}

func contains(roles []Role, r Role) bool {
	for _, allowed := range roles {
		if allowed == r {
			return true
		}
	}
	return false
}
