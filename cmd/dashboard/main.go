package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"campervan/internal/autocomplete"
	"campervan/internal/calendar"
	"campervan/internal/client"
	"campervan/internal/config"
	"campervan/internal/dashboard"
	"campervan/internal/detail"
	"campervan/internal/entities"
	"campervan/internal/logging"
	"campervan/internal/store"
)

const help = `commands:
  search <text>                 search stations
  down | up | enter | esc       navigate the search results
  clear                         clear the selected station
  next | prev                   move one week
  week                          show the calendar
  stats                         show quick stats
  open <booking id>             show booking details
  back                          return to the calendar
  move <booking id> pickup|return <from> <to>
                                reschedule by drag and drop
  refresh                       reload the visible week
  quit`

func main() {
	cfg := config.LoadDashboard()
	log := logging.New(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	api := client.New(cfg.APIBaseURL, nil, cfg.Timeout, log)
	st := store.New(time.Now(), log)

	d, err := dashboard.New(ctx, st, api, log, dashboard.Config{
		DebounceDelay: cfg.DebounceDelay,
		RefreshCron:   cfg.RefreshCron,
	})
	if err != nil {
		log.WithError(err).Fatal("Failed to start dashboard")
	}
	d.Start()
	defer d.Stop()

	out := os.Stdout
	if cfg.StationQuery != "" {
		search(d, cfg.StationQuery, out)
	}
	d.Wait()
	printWeek(out, d)

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	fmt.Fprintln(out, help)
	for {
		fmt.Fprint(out, "> ")
		var line string
		select {
		case <-ctx.Done():
			return
		case l, ok := <-lines:
			if !ok {
				return
			}
			line = l
		}
		if !run(ctx, d, strings.Fields(line), out) {
			return
		}
	}
}

// run executes one command and reports whether the loop should go on.
func run(ctx context.Context, d *dashboard.Dashboard, args []string, out io.Writer) bool {
	if len(args) == 0 {
		return true
	}
	switch args[0] {
	case "quit", "exit":
		return false
	case "search":
		search(d, strings.Join(args[1:], " "), out)
	case "down":
		d.Stations.Key(autocomplete.KeyArrowDown)
		printOptions(out, d.Stations)
	case "up":
		d.Stations.Key(autocomplete.KeyArrowUp)
		printOptions(out, d.Stations)
	case "enter":
		d.Stations.Key(autocomplete.KeyEnter)
		d.Wait()
		printWeek(out, d)
	case "esc":
		d.Stations.Key(autocomplete.KeyEscape)
	case "clear":
		d.Stations.Clear()
		d.Wait()
		printWeek(out, d)
	case "next", "prev":
		weeks := 1
		if args[0] == "prev" {
			weeks = -1
		}
		d.Calendar.Navigate(ctx, weeks)
		d.Wait()
		printWeek(out, d)
	case "refresh":
		d.Calendar.Refresh(ctx)
		d.Wait()
		printWeek(out, d)
	case "week":
		printWeek(out, d)
	case "stats":
		s := d.QuickStats()
		fmt.Fprintf(out, "This week: %d  Pickups: %d  Returns: %d  Pending: %d\n", s.ThisWeek, s.Pickups, s.Returns, s.Pending)
	case "open":
		if len(args) != 2 {
			fmt.Fprintln(out, "usage: open <booking id>")
			break
		}
		open(d, args[1], out)
	case "back":
		d.BackToCalendar()
		printWeek(out, d)
	case "move":
		if len(args) != 5 {
			fmt.Fprintln(out, "usage: move <booking id> pickup|return <from> <to>")
			break
		}
		event := entities.EventType(args[2])
		if !event.Valid() {
			fmt.Fprintln(out, "event must be pickup or return")
			break
		}
		d.Calendar.DragStart(args[1], event, args[3])
		d.Calendar.DragEnter(args[4])
		if !d.Calendar.Drop(ctx, args[4]) {
			fmt.Fprintln(out, "nothing moved")
		}
		printWeek(out, d)
	default:
		fmt.Fprintln(out, help)
	}
	return true
}

func search(d *dashboard.Dashboard, text string, out io.Writer) {
	d.Stations.Type(text)
	d.Stations.Wait()
	printOptions(out, d.Stations)
}

func open(d *dashboard.Dashboard, id string, out io.Writer) {
	for _, b := range d.Calendar.Bookings() {
		if b.ID == id {
			view := d.OpenBooking(b)
			d.Wait()
			printDetail(out, view)
			return
		}
	}
	fmt.Fprintf(out, "booking %s is not in the visible week\n", id)
}

func printOptions(out io.Writer, w *autocomplete.Widget) {
	opts := w.Options()
	if len(opts) == 0 {
		if strings.TrimSpace(w.Text()) != "" {
			fmt.Fprintln(out, "No stations found")
		}
		return
	}
	for i, o := range opts {
		marker := " "
		if i == w.Highlighted() {
			marker = ">"
		}
		fmt.Fprintf(out, "%s %s\n", marker, o.Label)
	}
}

func printWeek(out io.Writer, d *dashboard.Dashboard) {
	state := d.State()
	title := "All stations"
	if state.SelectedStation != nil {
		title = "Bookings for " + state.SelectedStation.Label
	}
	fmt.Fprintf(out, "\n%s  |  %s\n", d.Calendar.Label(), title)

	grid := d.Calendar.Grid()
	if grid == nil {
		fmt.Fprintln(out, "Loading bookings...")
		return
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, day := range grid {
		marker := ""
		if day.Today {
			marker = " (today)"
		}
		fmt.Fprintf(tw, "%s %d%s\t", day.Date.Format("Mon"), day.Date.Day(), marker)
		if len(day.Entries) == 0 {
			fmt.Fprintln(tw, "No bookings")
			continue
		}
		parts := make([]string, 0, len(day.Entries))
		for _, e := range day.Entries {
			parts = append(parts, fmt.Sprintf("%s %s [%s] %s", e.Booking.ID, e.Booking.CustomerName, e.Booking.Status, badges(e)))
		}
		fmt.Fprintln(tw, strings.Join(parts, "; "))
	}
	tw.Flush()
}

func badges(e calendar.Entry) string {
	labels := make([]string, 0, len(e.Badges))
	for _, b := range e.Badges {
		label := "Pickup"
		if b.Event == entities.EventReturn {
			label = "Return"
		}
		if b.Rescheduled {
			label += "*"
		}
		labels = append(labels, label)
	}
	return strings.Join(labels, " ")
}

func printDetail(out io.Writer, v *detail.View) {
	if msg := v.Error(); msg != "" {
		fmt.Fprintf(out, "%s (booking %s)\n", msg, v.BookingID())
		return
	}
	b := v.Booking()
	if b == nil {
		fmt.Fprintln(out, "Loading booking details...")
		return
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Booking\t#%s (%s)\n", b.ID, detail.StatusLabel(b.Status))
	fmt.Fprintf(tw, "Customer\t%s, %s, %s\n", b.CustomerName, b.CustomerEmail, b.CustomerPhone)
	fmt.Fprintf(tw, "Vehicle\t%s %s (%s)\n", b.VehicleColor, b.VehicleModel, b.VehiclePlate)
	fmt.Fprintf(tw, "Pickup\t%s %s at %s\n", formatDate(b.StartDate), b.PickupTime, stationName(b.PickupStation))
	fmt.Fprintf(tw, "Return\t%s %s at %s\n", formatDate(b.EndDate), b.ReturnTime, stationName(b.ReturnStation))
	if days, err := detail.DurationDays(b.StartDate, b.EndDate); err == nil {
		fmt.Fprintf(tw, "Duration\t%d days\n", days)
	}
	fmt.Fprintf(tw, "Price\t%s %s\n", strconv.FormatFloat(b.TotalPrice, 'f', 2, 64), b.Currency)
	fmt.Fprintf(tw, "Insurance\t%s\n", b.InsuranceType)
	if b.SpecialRequests != "" {
		fmt.Fprintf(tw, "Requests\t%s\n", b.SpecialRequests)
	}
	tw.Flush()
}

func formatDate(date string) string {
	if s, err := detail.FormatDate(date); err == nil {
		return s
	}
	return date
}

func stationName(s *entities.Station) string {
	if s == nil {
		return "unknown station"
	}
	return s.Name
}
