package a

import "os"

// Startup code may still touch the environment.
func Prepare() {
	os.Setenv("DB_TYPE", "memory")
}
