package users

type UserRepo interface {
	Upsert(user *User) error
	GetByEmail(email string) (*User, error)
	GetByID(ID string) (*User, error)
	List(assemblyID string) ([]*User, error)
	SetActive(ID string, active bool) error
}
