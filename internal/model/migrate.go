package model

// MigrateAble lists the tables owned by the service in creation order.
// Later entries may reference earlier ones.
var MigrateAble = []interface{}{
	&User{},
	&Application{},
	&StatusChange{},
}
