package repository

import "errors"

var (
	ErrWordNotFound      = errors.New("word not found")
	ErrDailyWordNotFound = errors.New("daily word not found")
	ErrDailyWordExists   = errors.New("daily word already exists for date")
	ErrStoryNotFound     = errors.New("story not found")
)
