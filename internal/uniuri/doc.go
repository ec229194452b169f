// Package uniuri generates random strings good for use in URIs to identify
// unique objects. It uses crypto/rand and avoids modulo bias when mapping
// random bytes onto the allowed character set.
package uniuri
