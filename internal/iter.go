// Package internal holds iterator helpers shared by the vcpu packages.
package internal

import (
	"iter"
)

// IterSeq2Concat yields every pair of each sequence, in order.
func IterSeq2Concat[K any, V any](seqs ...iter.Seq2[K, V]) iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, seq := range seqs {
			for k, v := range seq {
				if !yield(k, v) {
					return
				}
			}
		}
	}
}
