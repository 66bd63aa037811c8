// Package access contém os guards de autorização aplicados antes de
// qualquer operação protegida. Os guards são predicados independentes e
// componíveis: apenas inspecionam o actor e retornam erro da taxonomia,
// sem efeito colateral e sem mutar actor ou recurso.
package access

import (
	"github.com/rafabene/gamehub-backend/internal/domain/entities"
	apperrors "github.com/rafabene/gamehub-backend/internal/domain/errors"
)

// RequireAuthenticated falha com ErrUnauthorized quando não há actor.
// Actor sem role válido não passa nenhum check (fail-closed).
func RequireAuthenticated(actor *entities.Actor) error {
	if actor == nil || actor.ID == "" || !actor.Role.IsValid() {
		return apperrors.ErrUnauthorized
	}
	return nil
}

// RequirePermission falha com ErrUnauthorized se não autenticado,
// ou ErrForbidden se o role do actor não concede a permissão.
func RequirePermission(actor *entities.Actor, permission entities.Permission) error {
	if err := RequireAuthenticated(actor); err != nil {
		return err
	}
	if !actor.Role.HasPermission(permission) {
		return apperrors.ErrForbidden
	}
	return nil
}

// RequireRole falha com ErrForbidden se o role do actor não está
// entre os permitidos.
func RequireRole(actor *entities.Actor, allowedRoles ...entities.Role) error {
	if err := RequireAuthenticated(actor); err != nil {
		return err
	}
	for _, role := range allowedRoles {
		if actor.Role == role {
			return nil
		}
	}
	return apperrors.ErrForbidden
}

// RequireOwnership falha com ErrForbidden a menos que o actor seja o dono
// do recurso. O override administrativo é incondicional e total: nunca é
// restringido por um check de permissão mais estreito.
func RequireOwnership(actor *entities.Actor, resourceOwnerID string) error {
	if err := RequireAuthenticated(actor); err != nil {
		return err
	}
	if actor.Role == entities.RoleAdmin {
		return nil
	}
	if actor.ID != resourceOwnerID {
		return apperrors.ErrForbidden
	}
	return nil
}
