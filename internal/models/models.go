package models

// All returns every persisted model in migration order.
func All() []interface{} {
	return []interface{}{
		&Hero{},
		&About{},
		&Skill{},
		&Project{},
		&Technology{},
		&Feature{},
		&GalleryItem{},
		&Review{},
		&Message{},
		&AdminSession{},
	}
}
