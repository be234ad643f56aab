package generator

import "github.com/toyz/vtwrap/internal/models"

const (
	vtableViewFactory = "ofAddress"
	// ParamSegment is the constructor parameter holding the native object
	ParamSegment = "segment"
)

// synthesizeConstructor builds the initializer: object address first, then the
// vtable view, then one resolved callable per slot in discovery order. The
// memory region is assumed to be laid out correctly and is not checked.
func (g *Generator) synthesizeConstructor(iface *models.InterfaceType, vtbl *models.VtableType, slots []MatchedSlot) *models.ConstructorDecl {
	segment := &models.Ident{Name: ParamSegment}

	body := []models.Stmt{
		&models.Assign{Field: FieldObject, Value: g.runtime.ObjectAddress(segment)},
		&models.Assign{Field: FieldVtable, Value: &models.StaticCall{
			Type:   vtbl.Ref(),
			Method: vtableViewFactory,
			Args: []models.Expr{
				g.runtime.VtablePointer(iface.Ref(), segment),
				&models.FieldRef{Name: FieldScope},
			},
		}},
	}
	for _, slot := range slots {
		body = append(body, &models.Assign{
			Field: slot.Name(),
			Value: &models.StaticCall{
				Type:   vtbl.Ref(),
				Method: slot.Accessor.Name,
				Args:   []models.Expr{&models.FieldRef{Name: FieldVtable}},
			},
		})
	}

	return &models.ConstructorDecl{
		Modifiers: models.Modifiers{Public: true},
		Params:    []models.Param{{Name: ParamSegment, Type: g.runtime.SegmentType()}},
		Body:      body,
	}
}
