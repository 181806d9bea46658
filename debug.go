// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

//go:build debug

package qmdd

import (
	"log"
	"os"
)

const _DEBUG bool = true

func init() {
	log.SetOutput(os.Stdout)
}
