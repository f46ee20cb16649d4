// Copyright 2024 The netplan Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package types

import "fmt"

// TopologyError reports an airport set or arc that does not fit the
// two-hub, two-spoke, one-far-spoke network.
type TopologyError struct {
	Msg string
}

func (e *TopologyError) Error() string {
	return "topology: " + e.Msg
}

// ConfigurationError reports an incomplete static table, e.g. a valid
// airport with no cost entry.
type ConfigurationError struct {
	Field string
	Msg   string
}

func (e *ConfigurationError) Error() string {
	if e.Field == "" {
		return "configuration: " + e.Msg
	}
	return fmt.Sprintf("configuration: %s: %s", e.Field, e.Msg)
}

// DataValidationError reports a negative or missing demand or fare value.
type DataValidationError struct {
	Day  Day
	Pair Pair
	Msg  string
}

func (e *DataValidationError) Error() string {
	if e.Pair == (Pair{}) {
		return fmt.Sprintf("data validation: day %d: %s", e.Day, e.Msg)
	}
	return fmt.Sprintf("data validation: day %d pair %s: %s", e.Day, e.Pair, e.Msg)
}

// ModelInfeasibleError is returned verbatim when the solver proves the
// program infeasible.
type ModelInfeasibleError struct {
	Program string
	Detail  string
}

func (e *ModelInfeasibleError) Error() string {
	return fmt.Sprintf("model %s is infeasible: %s", e.Program, e.Detail)
}

// ModelUnboundedError is returned verbatim when the solver reports an
// unbounded objective.
type ModelUnboundedError struct {
	Program string
	Detail  string
}

func (e *ModelUnboundedError) Error() string {
	return fmt.Sprintf("model %s is unbounded: %s", e.Program, e.Detail)
}
