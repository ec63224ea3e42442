// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package custodian

import "context"

// DeleteIdentity zeroes the sealed record on disk and drops the in-memory
// key. {any} -- deleteAll --> [Empty].
func (c *Custodian) DeleteIdentity(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.clearSealed(ctx); err != nil {
		return err
	}
	c.clearKey()

	c.log.Info().Msg("custodian: identity deleted")
	return nil
}
