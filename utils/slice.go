package utils

func Map[T any, U any](src []T, mapper func(T) U) []U {
	dst := make([]U, 0, len(src))
	for _, item := range src {
		dst = append(dst, mapper(item))
	}
	return dst
}

// Unique keeps the first occurrence of each value, preserving order.
func Unique[T comparable](src []T) []T {
	seen := make(map[T]struct{}, len(src))
	dst := make([]T, 0, len(src))
	for _, item := range src {
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		dst = append(dst, item)
	}
	return dst
}

func Contains[T comparable](src []T, target T) bool {
	for _, item := range src {
		if item == target {
			return true
		}
	}
	return false
}

func Ptr[T any](v T) *T {
	return &v
}
