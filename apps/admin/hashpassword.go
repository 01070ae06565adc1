package main

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/crypto/bcrypt"
)

var hashOutput io.Writer = os.Stdout // mockable

// hashPassword prints the env assignment that configures the admin account
// password for the current environment.
func (cli *commandLine) hashPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(hashOutput, "%s_ADMIN_PASSWORDHASH=%s\n", cli.conf.Env, hash)
	return err
}
