package repository

import "errors"

var ErrNotFound = errors.New("not found")

// compare-and-setで0件更新（他のリクエストが先に更新した）
var ErrStaleVersion = errors.New("stale version")

// 一意制約違反
var ErrDuplicate = errors.New("duplicate")
