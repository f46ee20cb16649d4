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

// Common unit conversion constants.

package units

const (
	// Mass
	KgPerTonne = 1000.0

	// Distance
	KmPerMile         = 1.609344
	KmPerNauticalMile = 1.852
)

// KgToTonnes converts an aircraft weight in kilograms to metric tonnes, the
// unit landing fees are quoted in.
func KgToTonnes(kg float64) float64 {
	return kg / KgPerTonne
}
