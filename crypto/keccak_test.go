package crypto

import (
	"bytes"
	"encoding/hex"
	"testing"
)

func TestKeccak256Empty(t *testing.T) {
	got := Keccak256()
	want, _ := hex.DecodeString("c5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470")
	if !bytes.Equal(got, want) {
		t.Fatalf("keccak256(empty) = %x, want %x", got, want)
	}
}

func TestKeccak256Concat(t *testing.T) {
	a := Keccak256([]byte("hello"), []byte("world"))
	b := Keccak256([]byte("helloworld"))
	if !bytes.Equal(a, b) {
		t.Fatalf("keccak256 of split args should match concatenated call")
	}
}

func TestEmptyCodeHashConstant(t *testing.T) {
	want, _ := hex.DecodeString("c5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470")
	if !bytes.Equal(EmptyCodeHash[:], want) {
		t.Fatalf("EmptyCodeHash = %x, want %x", EmptyCodeHash, want)
	}
}
