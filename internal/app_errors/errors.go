package app_errors

import "errors"

var ErrProgressNotFound = errors.New("progress record not found")
var ErrProgressExists = errors.New("progress record already exists")
var ErrProfileNotFound = errors.New("profile not found")
var ErrAchievementNotFound = errors.New("achievement not found")
var ErrUnknownModule = errors.New("unknown module")
var ErrInvalidScore = errors.New("score must be between 0 and 100")
var ErrInvalidInput = errors.New("invalid input")
var ErrStorageUnavailable = errors.New("storage unavailable")
var ErrTokenExpired = errors.New("token expired")
var ErrNotImage = errors.New("not image")
var ErrFileSize = errors.New("file size error")
