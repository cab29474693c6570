package handler

import "github.com/gofiber/fiber/v2"

// ProcedureKind distinguishes read-only procedures from state-changing ones.
type ProcedureKind string

const (
	// KindQuery procedures are served over GET with an optional ?input= JSON document.
	KindQuery ProcedureKind = "query"
	// KindMutation procedures are served over POST with a JSON body.
	KindMutation ProcedureKind = "mutation"
)

// Access declares who may call a procedure.
type Access string

const (
	AccessPublic Access = "public"
	AccessAdmin  Access = "admin"
)

// Procedure is one named entry of the RPC surface.
type Procedure struct {
	Name    string
	Kind    ProcedureKind
	Access  Access
	Handler fiber.Handler
	// RateLimited procedures share the per-IP login budget.
	RateLimited bool
}

func query(name string, access Access, h fiber.Handler) Procedure {
	return Procedure{Name: name, Kind: KindQuery, Access: access, Handler: h}
}

func mutation(name string, access Access, h fiber.Handler) Procedure {
	return Procedure{Name: name, Kind: KindMutation, Access: access, Handler: h}
}
