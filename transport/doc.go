// Copyright 2025 Poiesic Systems
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


// Package transport carries registry read calls to the goroutine that runs
// them.
//
// Direct runs a call on the caller's goroutine. Pooled hands it to an ants
// worker pool and waits for the reply, which bounds how many reads run at
// once and lets callers give up through their context while the call is
// queued or running.
package transport
