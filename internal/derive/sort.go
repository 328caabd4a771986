package derive

import (
	"sort"

	"github.com/alexanderramin/orthoplan/internal/domain"
)

func sortStable[T any](s []T, less func(a, b T) bool) {
	sort.SliceStable(s, func(i, j int) bool { return less(s[i], s[j]) })
}

func byToothAttachment(a, b domain.Attachment) bool {
	return domain.ToothNumber(a.Tooth) < domain.ToothNumber(b.Tooth)
}

func byToothIpr(a, b domain.IprEvent) bool {
	return domain.ToothNumber(a.Tooth) < domain.ToothNumber(b.Tooth)
}
