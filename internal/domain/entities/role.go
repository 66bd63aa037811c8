package entities

// Role representa o papel de um usuário no sistema
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleDeveloper Role = "developer"
	RolePlayer    Role = "player"
)

// Permission representa uma permissão específica
type Permission string

const (
	// Administration permissions
	PermissionManageUsers      Permission = "manage_users"
	PermissionManageGames      Permission = "manage_games"
	PermissionModerateContent  Permission = "moderate_content"
	PermissionViewAnalytics    Permission = "view_analytics"
	PermissionConfigureSystem  Permission = "configure_system"
	PermissionManageCategories Permission = "manage_categories"

	// Developer permissions
	PermissionSubmitGames      Permission = "submit_games"
	PermissionManageOwnGames   Permission = "manage_own_games"
	PermissionViewOwnAnalytics Permission = "view_own_analytics"

	// Player permissions
	PermissionPlayGames       Permission = "play_games"
	PermissionRateGames       Permission = "rate_games"
	PermissionManagePlaylists Permission = "manage_playlists"
	PermissionEditOwnProfile  Permission = "edit_own_profile"
)

// PermissionCatalog é o conjunto fechado de permissões válidas.
// Construir uma Permission fora do catálogo é erro de programação,
// não erro de runtime do usuário.
var PermissionCatalog = []Permission{
	PermissionManageUsers,
	PermissionManageGames,
	PermissionModerateContent,
	PermissionViewAnalytics,
	PermissionConfigureSystem,
	PermissionManageCategories,
	PermissionSubmitGames,
	PermissionManageOwnGames,
	PermissionViewOwnAnalytics,
	PermissionPlayGames,
	PermissionRateGames,
	PermissionManagePlaylists,
	PermissionEditOwnProfile,
}

// RolePermissions mapeia roles para suas permissões.
// Dados estáticos: definidos na inicialização do processo, nunca mutados.
var RolePermissions = map[Role][]Permission{
	RoleAdmin: {
		PermissionManageUsers,
		PermissionManageGames,
		PermissionModerateContent,
		PermissionViewAnalytics,
		PermissionConfigureSystem,
		PermissionManageCategories,
		PermissionPlayGames,
		PermissionRateGames,
	},
	RoleDeveloper: {
		PermissionSubmitGames,
		PermissionManageOwnGames,
		PermissionViewOwnAnalytics,
		PermissionEditOwnProfile,
		PermissionPlayGames,
		PermissionRateGames,
	},
	RolePlayer: {
		PermissionPlayGames,
		PermissionRateGames,
		PermissionManagePlaylists,
		PermissionEditOwnProfile,
	},
}

// IsValid verifica se o role pertence à enumeração fechada
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleDeveloper, RolePlayer:
		return true
	}
	return false
}

// IsValid verifica se a permissão pertence ao catálogo
func (p Permission) IsValid() bool {
	for _, known := range PermissionCatalog {
		if known == p {
			return true
		}
	}
	return false
}

// GetPermissions retorna permissões de um role.
// Role desconhecido retorna vazio (fail-closed).
func (r Role) GetPermissions() []Permission {
	return RolePermissions[r]
}

// HasPermission verifica se role tem permissão.
// Role ou permissão desconhecidos retornam false (fail-closed).
func (r Role) HasPermission(permission Permission) bool {
	permissions := RolePermissions[r]
	for _, p := range permissions {
		if p == permission {
			return true
		}
	}
	return false
}
