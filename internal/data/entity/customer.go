package entity

type ActorRole string

const (
	RoleCustomer ActorRole = "customer"
	RoleStaff    ActorRole = "staff"
	RoleAdmin    ActorRole = "admin"
	RoleSystem   ActorRole = "system"
)

type Customer struct {
	Base
	Name        string  `db:"name"`
	Email       string  `db:"email"`
	Phone       *string `db:"phone"`
	DeviceToken *string `db:"device_token"`
}
