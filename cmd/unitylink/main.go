// unitylink - Unity as a Library for Expo iOS projects

package main

import (
	"github.com/expo-unity/unitylink/internal/cli"
)

func main() {
	cli.Execute()
}
