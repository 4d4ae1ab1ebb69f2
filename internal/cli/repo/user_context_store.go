package repo

// UserContextStore абстракция для хранения контекста пользователя (email последнего входа).
type UserContextStore interface {
	SaveLogin(email string) error
	LoadLogin() (string, error)
}
