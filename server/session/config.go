package session

import (
	"fmt"

	"github.com/topi314/club-recruitment/internal/xtime"
)

type StoreType string

const (
	StoreTypeMemory   StoreType = "memory"
	StoreTypePostgres StoreType = "postgres"
)

type Config struct {
	Store        StoreType      `toml:"store"`
	MaxAge       xtime.Duration `toml:"max_age"`
	SecureCookie bool           `toml:"secure_cookie"`
}

func (c Config) String() string {
	return fmt.Sprintf("\n Store: %s\n MaxAge: %s\n SecureCookie: %t",
		c.Store,
		c.MaxAge,
		c.SecureCookie,
	)
}

// Identity is who the browser acts as. There is no authentication, so it is chosen by configuration
// or by the user and only ever read from the request's session.
type Identity struct {
	StudentID     int `toml:"student_id"`
	CoordinatorID int `toml:"coordinator_id"`
}

func (i Identity) String() string {
	return fmt.Sprintf("\n StudentID: %d\n CoordinatorID: %d",
		i.StudentID,
		i.CoordinatorID,
	)
}
