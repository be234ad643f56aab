package generator

import (
	"fmt"

	"github.com/toyz/vtwrap/internal/errors"
	"github.com/toyz/vtwrap/internal/models"
)

var fixedFields = map[string]bool{
	FieldScope:  true,
	FieldObject: true,
	FieldVtable: true,
}

// callOperation returns the single abstract operation a slot forwards to
func callOperation(d *models.DescriptorType) (models.MethodMeta, string) {
	ops := d.AbstractOperations()
	switch len(ops) {
	case 0:
		return models.MethodMeta{}, fmt.Sprintf("descriptor %s declares no abstract call operation", d.Name)
	case 1:
	default:
		return models.MethodMeta{}, fmt.Sprintf("descriptor %s declares %d abstract call operations", d.Name, len(ops))
	}
	if len(ops[0].Params) == 0 {
		return models.MethodMeta{}, fmt.Sprintf("call operation %s.%s has no receiver parameter", d.Name, ops[0].Name)
	}
	return ops[0], ""
}

// synthesizeWrapper builds the cached-callable field and the public wrapper
// method for one slot. The receiver parameter of the call operation is dropped
// from the wrapper and replaced by the instance's object address.
func (g *Generator) synthesizeWrapper(iface *models.InterfaceType, slot MatchedSlot) (*models.FieldDecl, *models.MethodDecl, *errors.SlotSynthesisError) {
	if fixedFields[slot.Name()] {
		return nil, nil, errors.NewSlotSynthesisError(iface.Name, slot.Name(),
			fmt.Sprintf("slot name %s collides with a fixed wrapper field", slot.Name()))
	}
	if slot.Descriptor.Name == IdentityAccessorName && g.exceptions.HasIdentity(iface.Name) {
		return nil, nil, errors.NewSlotSynthesisError(iface.Name, slot.Name(),
			fmt.Sprintf("wrapper method %s collides with the identity accessor", slot.Descriptor.Name))
	}

	op, reason := callOperation(slot.Descriptor)
	if reason != "" {
		return nil, nil, errors.NewSlotSynthesisError(iface.Name, slot.Name(), reason)
	}

	field := &models.FieldDecl{
		Name:      slot.Name(),
		Type:      slot.Descriptor.Ref(),
		Modifiers: models.Modifiers{Final: true},
	}

	method := &models.MethodDecl{
		Name:      slot.Descriptor.Name,
		Modifiers: models.Modifiers{Public: true},
		Return:    op.Return,
	}

	args := []models.Expr{&models.FieldRef{Name: FieldObject}}
	for i, p := range op.Params[1:] {
		name := p.Name
		if name == "" {
			name = fmt.Sprintf("p%d", i)
		}
		method.Params = append(method.Params, models.Param{Name: name, Type: p.Type})
		args = append(args, &models.Ident{Name: name})
	}

	call := &models.Call{
		Recv:   &models.FieldRef{Name: field.Name},
		Method: op.Name,
		Args:   args,
	}
	if op.Return.IsVoid() {
		method.Body = []models.Stmt{&models.ExprStmt{Value: call}}
	} else {
		method.Body = []models.Stmt{&models.Return{Value: call}}
	}

	return field, method, nil
}
