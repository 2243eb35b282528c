package main

import (
	"EH-Matcher/config"
	"EH-Matcher/pkg/kmp"
	"EH-Matcher/pkg/matcher"
	"EH-Matcher/pkg/rabinkarp"
	"EH-Matcher/pkg/system/sysPrint"
	"EH-Matcher/pkg/utils/datastructure"
	"flag"
	"fmt"
	"io"
	"os"
)

var (
	demo = flag.Bool("demo", false, "run the string matching demo and exit")
	_    = flag.String("configPath", config.ConfigFilePath, "config file path")
)

const banner = `
 ______     __  __     __    __     ______     ______   ______     __  __
/\  ___\   /\ \_\ \   /\ "-./  \   /\  __ \   /\__  _\ /\  ___\   /\ \_\ \
\ \  __\   \ \  __ \  \ \ \-./\ \  \ \  __ \  \/_/\ \/ \ \ \____  \ \  __ \
 \ \_____\  \ \_\ \_\  \ \_\ \ \_\  \ \_\ \_\    \ \_\  \ \_____\  \ \_\ \_\
  \/_____/   \/_/\/_/   \/_/  \/_/   \/_/\/_/     \/_/   \/_____/   \/_/\/_/

`

func printBanner(w io.Writer) {
	fmt.Fprint(w, banner)
}

// runDemo 三个算法的示例输入与输出
func runDemo(w io.Writer) error {
	fmt.Fprintln(w, "Rabin Karp Data Structure:")
	idx := rabinkarp.Index("abcxabcaby", "abcaby")
	if idx == rabinkarp.NotFound {
		fmt.Fprintln(w, "Word Not Match")
	} else {
		fmt.Fprintf(w, "Found Word First Character at Index:%d\n", idx)
	}
	fmt.Fprint(w, "---------------------------------------\n\n")

	fmt.Fprintln(w, "Trie Tree Data Structure:")
	trie := datastructure.NewTrie()
	for _, word := range []string{"zbc", "abgl", "cdf", "abcd", "lmn"} {
		if err := trie.Insert(word); err != nil {
			return err
		}
	}
	for _, word := range []string{"abg", "cdf"} {
		found, err := trie.Contains(word)
		if err != nil {
			return err
		}
		if found {
			fmt.Fprintf(w, "Search Word %s: Found\n", word)
		} else {
			fmt.Fprintf(w, "Search Word %s: Not Found\n", word)
		}
	}
	fmt.Fprint(w, "---------------------------------------\n\n")

	fmt.Fprintln(w, "KMP Data Structure:")
	for _, i := range kmp.Search("abcxabcabcaby", "abcaby") {
		fmt.Fprintf(w, "Found Word First Character at Index: %d\n", i)
	}
	return nil
}

func main() {
	flag.Parse()
	printBanner(os.Stdout)
	if *demo {
		if err := runDemo(os.Stdout); err != nil {
			sysPrint.PrintlnErrorMsg(err.Error())
			os.Exit(1)
		}
		return
	}

	c, err := config.NewMatcherConfig()
	if err != nil {
		sysPrint.PrintlnAndLogWriteFatalMsg(err.Error())
	}
	if err = sysPrint.Init(c.LogFile, c.LogLevel); err != nil {
		sysPrint.PrintlnAndLogWriteFatalMsg(err.Error())
	}
	defer sysPrint.LogClose()
	sysPrint.PrintlnAndLogWriteSystemMsg(fmt.Sprintf("dictionary loaded, %d words.", c.DictionaryTrie.Len()))

	mm := matcher.NewMatcherManager(c)
	if err = mm.Serve(); err != nil {
		sysPrint.PrintlnAndLogWriteFatalMsg(err.Error())
	}
	sysPrint.PrintlnAndLogWriteSystemMsg("EH-Matcher is now ready to exit, bye bye...")
}
