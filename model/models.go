package model

// All lists the models that are migrated at startup, parents first.
func All() []interface{} {
	return []interface{}{
		&User{},
		&TwitterAccount{},
		&Wallet{},
		&Tweet{},
	}
}
