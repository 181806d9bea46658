// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

//go:build !debug

package qmdd

// _DEBUG is false in the default (non-debug) build. rudd only ever defines
// this constant under its "debug" build tag, which means its default build
// does not actually compile on its own; we provide the missing counterpart
// here so the package builds both with and without the tag.
const _DEBUG bool = false
