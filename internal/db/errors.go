package db

import "errors"

var ErrQueryTenant = errors.New("failed to query tenant")
