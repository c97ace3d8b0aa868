package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"VillageEmpire/internal/shared/gameconfig/building"
	"VillageEmpire/internal/village/domain"
	"VillageEmpire/internal/village/engine"
)

var (
	speedUps  int
	archetype string
	hours     int
	builds    []string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "villagectl",
		Short: "村庄模拟离线工具：查看配置表、加速成本、资源推演",
	}

	catalogCmd := &cobra.Command{
		Use:   "catalog",
		Short: "打印建筑与村庄类型配置",
		RunE:  runCatalog,
	}

	speedUpCmd := &cobra.Command{
		Use:   "speedup-costs",
		Short: "打印前 n 次资源加速的成本",
		RunE:  runSpeedUpCosts,
	}
	speedUpCmd.Flags().IntVarP(&speedUps, "count", "n", 5, "加速次数")

	simulateCmd := &cobra.Command{
		Use:     "simulate",
		Short:   "按村庄类型与建筑推演资源增长",
		Example: `  villagectl simulate -a teuton -b woodcutter=3 -b farm -H 12`,
		RunE:    runSimulate,
	}
	simulateCmd.Flags().StringVarP(&archetype, "archetype", "a", "roman", "村庄类型 roman|gaulois|teuton")
	simulateCmd.Flags().IntVarP(&hours, "hours", "H", 24, "推演小时数")
	simulateCmd.Flags().StringArrayVarP(&builds, "building", "b", nil, "建筑，格式 id[=level]，可重复")

	rootCmd.AddCommand(catalogCmd, speedUpCmd, simulateCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runCatalog(cmd *cobra.Command, args []string) error {
	cat, err := building.Load()
	if err != nil {
		return err
	}
	title := color.New(color.FgCyan, color.Bold)

	title.Println("建筑")
	table := tablewriter.NewTable(os.Stdout,
		tablewriter.WithHeader([]string{"ID", "名称", "建造(秒)", "成本 木/石/铁/粮", "每级产量 木/石/铁/粮", "等级要求"}),
	)
	for _, e := range cat.All() {
		_ = table.Append([]string{
			e.ID,
			e.Name,
			strconv.FormatInt(e.BuildTime, 10),
			formatRes(domain.ResourcesFrom(e.Cost)),
			formatRes(domain.ResourcesFrom(e.Production)),
			strconv.Itoa(e.RequiredLevel),
		})
	}
	if err := table.Render(); err != nil {
		return err
	}

	fmt.Println()
	title.Println("村庄类型")
	at := tablewriter.NewTable(os.Stdout, tablewriter.WithHeader([]string{"ID", "名称", "加成 木/石/铁/粮", "说明"}))
	for _, a := range cat.Archetypes() {
		_ = at.Append([]string{
			a.ID,
			a.Name,
			fmt.Sprintf("%.0f%%/%.0f%%/%.0f%%/%.0f%%", a.Bonus.Wood*100, a.Bonus.Stone*100, a.Bonus.Iron*100, a.Bonus.Food*100),
			a.Description,
		})
	}
	return at.Render()
}

func runSpeedUpCosts(cmd *cobra.Command, args []string) error {
	if speedUps < 1 {
		return fmt.Errorf("count 至少为 1")
	}
	table := tablewriter.NewTable(os.Stdout, tablewriter.WithHeader([]string{"第几次", "木", "石", "铁"}))
	for i := 0; i < speedUps; i++ {
		c := engine.SpeedUpCost(i)
		_ = table.Append([]string{
			strconv.Itoa(i + 1),
			strconv.FormatInt(c.Wood, 10),
			strconv.FormatInt(c.Stone, 10),
			strconv.FormatInt(c.Iron, 10),
		})
	}
	color.Yellow("资源加速：结束时间提前 5 分钟，剩余时间不少于 10 秒")
	return table.Render()
}

func runSimulate(cmd *cobra.Command, args []string) error {
	if hours < 0 {
		return fmt.Errorf("hours 不能为负")
	}
	cat, err := building.Load()
	if err != nil {
		return err
	}
	bs, err := parseBuildings(builds, cat)
	if err != nil {
		return err
	}
	rates, snaps, err := project(cat, archetype, bs, hours)
	if err != nil {
		return err
	}

	color.New(color.FgGreen, color.Bold).Printf("每小时产量 木 %.2f 石 %.2f 铁 %.2f 粮 %.2f\n",
		rates.Wood, rates.Stone, rates.Iron, rates.Food)
	table := tablewriter.NewTable(os.Stdout, tablewriter.WithHeader([]string{"小时", "木", "石", "铁", "粮"}))
	for _, s := range snaps {
		_ = table.Append([]string{
			strconv.Itoa(s.Hour),
			strconv.FormatInt(s.Resources.Wood, 10),
			strconv.FormatInt(s.Resources.Stone, 10),
			strconv.FormatInt(s.Resources.Iron, 10),
			strconv.FormatInt(s.Resources.Food, 10),
		})
	}
	return table.Render()
}

func formatRes(r domain.Resources) string {
	return fmt.Sprintf("%d/%d/%d/%d", r.Wood, r.Stone, r.Iron, r.Food)
}
