// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// parseEnv fills cfg from APP_*, SERVER_*, STORAGE_*, ADAPTER_* and
// WORKERS_* variables. Unset variables leave fields zero so that mergo keeps
// the lower priority source.
func parseEnv(cfg any) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidEnvConfigs, err)
	}
	return nil
}
