package entities

// User представляет владельца заметок. Остальные атрибуты пользователя
// (email, пароль, роли) принадлежат внешней системе и здесь не читаются.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}
