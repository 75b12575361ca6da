package config

import "time"

// Populated by Load from SECRET_KEY and ACCESS_TOKEN_EXPIRE_MINUTES.
var JWTSecret []byte
var JWTExpiration = 24 * time.Hour
