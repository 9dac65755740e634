package utils

func FindIndex[T comparable](slice []T, item T) int {
	for i, v := range slice {
		if v == item {
			return i
		}
	}
	return -1
}

func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
