package generator

import "github.com/toyz/vtwrap/internal/models"

// IdentityAccessorName is the static accessor returning the interface identifier
const IdentityAccessorName = "REFIID"

// synthesizeIdentity returns the static identifier accessor, or nil when the
// interface is listed as having none.
func (g *Generator) synthesizeIdentity(iface *models.InterfaceType) *models.MethodDecl {
	if !g.exceptions.HasIdentity(iface.Name) {
		return nil
	}
	return &models.MethodDecl{
		Name:      IdentityAccessorName,
		Modifiers: models.Modifiers{Public: true, Static: true},
		Return:    g.runtime.SegmentType(),
		Body: []models.Stmt{
			&models.Return{Value: g.runtime.IdentifierConstant(g.exceptions.IdentityKey(iface.Name))},
		},
	}
}
