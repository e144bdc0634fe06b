// =============================================================================
// fieldforge - Org Credentials
// =============================================================================
//
// This module resolves the target org connection handle from the environment.
// Credentials are read from environment variables, with an optional .env file
// loaded first so local development does not require exporting anything.
//
// ENVIRONMENT VARIABLES:
//   SF_USERNAME   - org username (required)
//   SF_PASSWORD   - org password (required)
//   SF_TOKEN      - security token, appended to the password on login (optional)
//   SF_LOGIN_URL  - login endpoint (optional, overrides the configured default)
//
// =============================================================================

package org

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Org holds the credentials and endpoint for the target org. The value is
// opaque to the core pipeline; only the deploy client consumes it.
type Org struct {
	Username      string
	Password      string
	SecurityToken string
	LoginURL      string
}

// FromEnv builds an Org from environment variables. A .env file in the
// working directory is loaded first if present; real environment variables
// win over .env entries. defaultLoginURL is used when SF_LOGIN_URL is unset.
func FromEnv(defaultLoginURL string) (*Org, error) {
	// godotenv does not overwrite variables that are already set, which is
	// the precedence we want. A missing .env file is fine.
	_ = godotenv.Load()

	o := &Org{
		Username:      os.Getenv("SF_USERNAME"),
		Password:      os.Getenv("SF_PASSWORD"),
		SecurityToken: os.Getenv("SF_TOKEN"),
		LoginURL:      os.Getenv("SF_LOGIN_URL"),
	}

	if o.LoginURL == "" {
		o.LoginURL = defaultLoginURL
	}

	if err := o.Validate(); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate checks that the required credentials are present.
func (o *Org) Validate() error {
	if o.Username == "" {
		return fmt.Errorf("missing org credentials: SF_USERNAME is not set")
	}
	if o.Password == "" {
		return fmt.Errorf("missing org credentials: SF_PASSWORD is not set")
	}
	if o.LoginURL == "" {
		return fmt.Errorf("missing org credentials: no login URL configured")
	}
	return nil
}

// LoginPassword returns the password with the security token appended, the
// combination the SOAP login call expects.
func (o *Org) LoginPassword() string {
	return o.Password + o.SecurityToken
}
