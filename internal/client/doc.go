// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the offline-first client runtime and its
// command tree.
//
// [App] wires local storage, the server adapter and the client services into
// a single process lifecycle. [NewRootCommand] exposes it as a cobra CLI:
// "run" keeps the background sync going, the other commands act once and
// exit.
package client
