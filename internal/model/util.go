// Package model contain gorm model for recording data to database
package model

// MigrateAble is array of model instance, use for migrating database
var MigrateAble []interface{}

func init() {
	MigrateAble = append(
		MigrateAble,
		&Admin{},
		&AdminContact{},
		&CommunityGroup{},
		&Candidate{},
		&Process{},
		&Round{},
		&Field{},
		&Application{},
		&RoundProgress{},
		&File{},
		&ArchivedApplication{},
	)
}
