package main

// General API documentation for swaggo. Regenerate docs/ with `swag init -g cmd/channelhubd/docs.go`.
//
// @title           channelhub API
// @version         1.0
// @description     HTTP API for publishing data channels and subscribing receivers to them.
//
// @contact.name   channelhub maintainers
//
// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT
//
// @BasePath  /
//
// @schemes http
