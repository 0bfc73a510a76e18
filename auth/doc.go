// Copyright (c) 2025 Fahry Jean.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth holds the passcode check for the game backend.

The game uses one shared passcode for submissions and admin operations.
ValidatePasscode compares in constant time and an empty configured passcode
never validates. The presentation layer never calls this; it forwards
passcodes to the backend unchanged.
*/
package auth
