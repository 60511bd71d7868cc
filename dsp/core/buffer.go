package core

// ChannelMean returns the mean of sample i across all channels.
// Every channel must be longer than i.
func ChannelMean(channels [][]float64, i int) float64 {
	switch len(channels) {
	case 0:
		return 0
	case 1:
		return channels[0][i]
	case 2:
		return 0.5 * (channels[0][i] + channels[1][i])
	}

	sum := 0.0
	for _, ch := range channels {
		sum += ch[i]
	}

	return sum / float64(len(channels))
}
