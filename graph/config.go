/*
 * GraphCore
 *
 * Copyright 2026 Matthias Ladkau. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package graph

import (
	"github.com/krotik/common/errorutil"
	"github.com/krotik/graphcore/graph/data"
)

/*
Config holds the options recognized at container creation (§6). Use
ConfigBuilder to construct one; the zero Config differs from
DefaultConfig (its conflict policy is Strict and its range fallback
threshold is 0).
*/
type Config struct {
	AllowNullPropertyValues     bool
	DefaultCardinality          data.Cardinality
	IDConflictPolicyOnImport    ConflictPolicy
	RangeIndexFallbackThreshold int
}

/*
DefaultConfig returns the configuration a Graph is built with when no
builder options are supplied.
*/
func DefaultConfig() *Config {
	return &Config{
		AllowNullPropertyValues:     false,
		DefaultCardinality:          data.Single,
		IDConflictPolicyOnImport:    GenerateNewID,
		RangeIndexFallbackThreshold: 8,
	}
}

/*
ConfigBuilder validates and assembles a Config, replacing the variadic
key-value constructors the teacher's REST layer uses for node/edge
creation (REDESIGN FLAGS: builder/config objects).
*/
type ConfigBuilder struct {
	cfg *Config
}

/*
NewConfigBuilder starts a builder pre-filled with DefaultConfig.
*/
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{cfg: DefaultConfig()}
}

/*
AllowNullPropertyValues sets whether a null property marker is
permitted.
*/
func (b *ConfigBuilder) AllowNullPropertyValues(allow bool) *ConfigBuilder {
	b.cfg.AllowNullPropertyValues = allow
	return b
}

/*
DefaultCardinality sets the cardinality used when a caller does not
specify one explicitly.
*/
func (b *ConfigBuilder) DefaultCardinality(card data.Cardinality) *ConfigBuilder {
	errorutil.AssertTrue(card == data.Single || card == data.List || card == data.Set,
		"DefaultCardinality: unknown cardinality")
	b.cfg.DefaultCardinality = card
	return b
}

/*
IDConflictPolicyOnImport sets the default conflict policy the snapshot
reader applies when none is supplied per call.
*/
func (b *ConfigBuilder) IDConflictPolicyOnImport(policy ConflictPolicy) *ConfigBuilder {
	b.cfg.IDConflictPolicyOnImport = policy
	return b
}

/*
RangeIndexFallbackThreshold sets the stored result-count boundary for
falling back from a range scan to a plain element scan. The query
planner does not read this value.
*/
func (b *ConfigBuilder) RangeIndexFallbackThreshold(n int) *ConfigBuilder {
	errorutil.AssertTrue(n >= 0, "RangeIndexFallbackThreshold: must not be negative")
	b.cfg.RangeIndexFallbackThreshold = n
	return b
}

/*
Build returns the assembled, validated Config. The builder must not be
reused after Build.
*/
func (b *ConfigBuilder) Build() *Config {
	cfg := b.cfg
	b.cfg = nil
	return cfg
}
