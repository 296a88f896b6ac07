package parser

import (
	"strings"

	"value-rating/model"
)

// agentRoles maps an agent name to its canonical role.
var agentRoles = map[string]string{
	"Astra":     model.RoleController,
	"Brimstone": model.RoleController,
	"Clove":     model.RoleController,
	"Harbor":    model.RoleController,
	"Omen":      model.RoleController,
	"Viper":     model.RoleController,

	"Breach": model.RoleInitiator,
	"Fade":   model.RoleInitiator,
	"Gekko":  model.RoleInitiator,
	"Kayo":   model.RoleInitiator,
	"KAY/O":  model.RoleInitiator,
	"Skye":   model.RoleInitiator,
	"Sova":   model.RoleInitiator,

	"Iso":     model.RoleDuelist,
	"Jett":    model.RoleDuelist,
	"Neon":    model.RoleDuelist,
	"Phoenix": model.RoleDuelist,
	"Raze":    model.RoleDuelist,
	"Reyna":   model.RoleDuelist,
	"Tejo":    model.RoleDuelist,
	"Yoru":    model.RoleDuelist,

	"Chamber":  model.RoleSentinel,
	"Cypher":   model.RoleSentinel,
	"Deadlock": model.RoleSentinel,
	"Killjoy":  model.RoleSentinel,
	"Sage":     model.RoleSentinel,
	"Vyse":     model.RoleSentinel,
	"Waylay":   model.RoleSentinel,
}

// RoleForAgent resolves an agent to its role, or model.RoleUnknown.
func RoleForAgent(agent string) string {
	if role, ok := agentRoles[strings.TrimSpace(agent)]; ok {
		return role
	}
	return model.RoleUnknown
}
