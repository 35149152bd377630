package config

import "time"

// StoreConfig содержит настройки обращений к хранилищу.
// Зависший вызов хранилища ограничивается этим таймаутом и
// превращается в ошибку недоступности, а не висит бесконечно.
type StoreConfig struct {
	Timeout time.Duration `yaml:"timeout" env:"NOTES_STORE_TIMEOUT" env-default:"5s"`
}
